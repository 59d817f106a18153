package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/marcus/devsetup/internal/auth"
	"github.com/marcus/devsetup/internal/output"
)

var loginCmd = &cobra.Command{
	Use:   "login [github|google]",
	Short: "Sign in with a (mock) provider",
	Long: `Signs in with a simulated GitHub or Google account. Signing in unlocks
favorites. Without a provider argument an interactive picker is shown.`,
	Args:    cobra.MaximumNArgs(1),
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		var providerName string
		switch {
		case len(args) == 1:
			providerName = args[0]
		case output.IsTerminal() && !jsonOut:
			if err := huh.NewSelect[string]().
				Title("Sign in with").
				Options(
					huh.NewOption("GitHub", string(auth.GitHub)),
					huh.NewOption("Google", string(auth.Google)),
				).
				Value(&providerName).
				Run(); err != nil {
				return err
			}
		default:
			return fail(jsonOut, output.ErrCodeInvalidInput, errors.New("provider is required (github or google)"))
		}

		p, err := auth.ParseProvider(providerName)
		if err != nil {
			return fail(jsonOut, output.ErrCodeInvalidInput, err)
		}

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if !jsonOut {
			fmt.Printf("Signing in with %s...\n", p.DisplayName())
		}
		u, err := a.session.Login(ctx, p)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return fail(jsonOut, output.ErrCodeInvalidInput, errors.New("sign-in cancelled"))
			}
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		if jsonOut {
			return output.JSON(u)
		}
		output.Success("Signed in as %s <%s>", u.Name, u.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Sign out and delete favorites",
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		if !a.session.SignedIn() {
			fmt.Println("Not signed in")
			return nil
		}
		if err := a.session.Logout(); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Signed out")
		return nil
	},
}

// WhoamiResult is the --json shape of whoami.
type WhoamiResult struct {
	SignedIn bool       `json:"signed_in"`
	User     *auth.User `json:"user,omitempty"`
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the signed-in user",
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		a, err := openApp()
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		defer a.Close()

		u, ok := a.session.User()
		if jsonOut {
			res := WhoamiResult{SignedIn: ok}
			if ok {
				res.User = &u
			}
			return output.JSON(res)
		}
		if !ok {
			fmt.Println("Not signed in. Run devsetup login to save favorites.")
			return nil
		}
		printUser(u)
		return nil
	},
}

func printUser(u auth.User) {
	fmt.Printf("%s <%s>\n", output.Title(u.Name), u.Email)
	fmt.Printf("  id:       %s\n", u.ID)
	fmt.Printf("  provider: %s\n", u.Provider.DisplayName())
	fmt.Printf("  avatar:   %s\n", output.Subtle(u.Avatar))
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update the signed-in user's name, email or avatar",
	Example: `  devsetup profile --name "Ada" --email ada@example.com`,
	GroupID: "account",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		var p auth.Profile
		for flag, dst := range map[string]**string{"name": &p.Name, "email": &p.Email, "avatar": &p.Avatar} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*dst = &v
			}
		}
		if p.Name == nil && p.Email == nil && p.Avatar == nil {
			return fail(jsonOut, output.ErrCodeInvalidInput, errors.New("nothing to update (use --name, --email or --avatar)"))
		}

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		defer a.Close()

		u, err := a.session.Update(p)
		if err != nil {
			if errors.Is(err, auth.ErrNotSignedIn) {
				return fail(jsonOut, output.ErrCodeSignupRequired, err)
			}
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		if jsonOut {
			return output.JSON(u)
		}
		output.Success("Profile updated")
		printUser(u)
		return nil
	},
}

func init() {
	loginCmd.Flags().Bool("json", false, "Output as JSON")
	whoamiCmd.Flags().Bool("json", false, "Output as JSON")
	profileCmd.Flags().Bool("json", false, "Output as JSON")
	profileCmd.Flags().String("name", "", "Display name")
	profileCmd.Flags().String("email", "", "Email address")
	profileCmd.Flags().String("avatar", "", "Avatar URL")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, profileCmd)
}
