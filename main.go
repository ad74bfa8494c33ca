package main

import "prefect-manager/cmd"

func main() {
	cmd.Execute()
}
