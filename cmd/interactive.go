package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"prefect-manager/internal/configdoc"
	"prefect-manager/internal/prompt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

const banner = `
 ___          __         _     __  __
| _ \_ _ ___ / _|___ __| |_  |  \/  |__ _ _ _  __ _ __ _ ___ _ _
|  _/ '_/ -_)  _/ -_) _|  _| | |\/| / _' | ' \/ _' / _' / -_) '_|
|_| |_| \___|_| \___\__|\__| |_|  |_\__,_|_||_\__,_\__, \___|_|
                                                   |___/
`

const back = "Back"

const (
	menuActivate   = "Activate Account"
	menuAddAccount = "Add Account"
	menuAddConfig  = "Add Config"
	menuEditConfig = "Edit Config"
	menuExit       = "Exit"
)

func (a *app) runInteractiveMenu(cmd *cobra.Command) error {
	for {
		clearScreen()
		fmt.Print(banner)
		current := "None"
		if e, ok, err := a.mgr.Current(commandContext(cmd)); err == nil && ok {
			current = fmt.Sprintf("%s (%s)", e.Account, e.Config)
		}
		fmt.Printf("Current Account: %s\n\n", current)

		menu := promptui.Select{
			Label: "Main Menu",
			Items: []string{menuActivate, menuAddAccount, menuAddConfig, menuEditConfig, menuExit},
			Templates: &promptui.SelectTemplates{
				Active:   "-> {{ . | cyan }}",
				Inactive: "   {{ . }}",
				Selected: "-> {{ . | cyan }}",
			},
			HideSelected: true,
			Stdout:       &BellSkipper{},
		}

		_, result, err := menu.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		switch result {
		case menuActivate:
			err = a.handleActivate(cmd)
		case menuAddAccount:
			err = a.handleAddAccount()
		case menuAddConfig:
			err = a.handleAddConfig()
		case menuEditConfig:
			err = a.handleEditConfig(cmd)
		case menuExit:
			return nil
		}

		if err != nil && !errors.Is(err, prompt.ErrNoInput) && !errors.Is(err, promptui.ErrInterrupt) {
			fmt.Printf("\nError: %v\n", err)
		}
		fmt.Println("Press Enter to continue...")
		fmt.Scanln()
	}
}

func (a *app) handleActivate(cmd *cobra.Command) error {
	accounts, err := a.mgr.ListAccounts()
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("No accounts found. Add one first.")
		return nil
	}
	account, err := selectOne("Select Account", accounts)
	if err != nil || account == back {
		return err
	}

	configs, err := a.mgr.ListConfigs()
	if err != nil {
		return err
	}
	configName, err := selectOne("Select Config", configs)
	if err != nil || configName == back {
		return err
	}

	if err := a.mgr.Activate(commandContext(cmd), account, configName); err != nil {
		return err
	}
	fmt.Printf("Activated '%s' with config '%s'.\n", account, configName)
	return nil
}

func (a *app) handleAddAccount() error {
	p := prompt.TerminalPrompter{}
	name, err := prompt.AskNonEmpty(p, "Name of Account", false, 0)
	if err != nil {
		return err
	}
	token, err := prompt.AskNonEmpty(p, "Access Token", true, 0)
	if err != nil {
		return err
	}
	if err := a.mgr.AddAccount(name, token); err != nil {
		return err
	}
	fmt.Printf("Account '%s' saved.\n", name)
	return nil
}

func (a *app) handleAddConfig() error {
	name, err := prompt.AskNonEmpty(prompt.TerminalPrompter{}, "Config Name", false, 0)
	if err != nil {
		return err
	}

	pathPrompt := promptui.Prompt{
		Label:     "Import From",
		Default:   a.mgr.Settings().ActiveConfigPath,
		AllowEdit: true,
	}
	path, err := pathPrompt.Run()
	if err != nil {
		return err
	}

	if err := a.mgr.AddConfig(name, path); err != nil {
		return err
	}
	fmt.Printf("Config '%s' added.\n", name)
	return nil
}

func (a *app) handleEditConfig(cmd *cobra.Command) error {
	configs, err := a.mgr.ListConfigs()
	if err != nil {
		return err
	}
	if len(configs) == 0 {
		configs = []string{configdoc.DefaultName}
	}
	name, err := selectOne("Select Config", configs)
	if err != nil || name == back {
		return err
	}
	return a.mgr.EditConfig(commandContext(cmd), name)
}

// selectOne shows items plus a Back entry.
func selectOne(label string, items []string) (string, error) {
	choices := append(append([]string{}, items...), back)
	sel := newSelect(label, choices, &promptui.SelectTemplates{
		Active:   "-> {{ . | cyan }}",
		Inactive: "   {{ . }}",
		Selected: "-> {{ . | cyan }}",
	})
	sel.Size = 10
	_, result, err := sel.Run()
	return result, err
}

func clearScreen() {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command("clear")
	}
	cmd.Stdout = os.Stdout
	cmd.Run()
}

// BellSkipper implements an io.WriteCloser that skips the bell character (\a).
// This prevents annoying sounds on Windows terminals during navigation.
type BellSkipper struct{}

func (bs *BellSkipper) Write(b []byte) (int, error) {
	const bell = 7 // ASCII \a
	if len(b) == 1 && b[0] == bell {
		return 0, nil
	}
	filtered := make([]byte, 0, len(b))
	for _, byteVal := range b {
		if byteVal != bell {
			filtered = append(filtered, byteVal)
		}
	}
	// Report len(b) so callers see a complete write.
	_, err := os.Stdout.Write(filtered)
	return len(b), err
}

func (bs *BellSkipper) Close() error {
	return nil
}

func newSelect(label string, items interface{}, templates *promptui.SelectTemplates) promptui.Select {
	return promptui.Select{
		Label:     label,
		Items:     items,
		Templates: templates,
		Stdout:    &BellSkipper{},
	}
}
