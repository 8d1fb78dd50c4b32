package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/matcheat/internal/client/api"
)

// getSimpleText, getPassword and getYesNo are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getYesNo      = GetYesNo
)

var errUsage = errors.New("usage")

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) askPassword(prompt string) (string, error) {
	return getPassword(prompt, a.out)
}

// Register prompts for handle, email, password and image, then creates the
// account. The image may be a URL or a local file, which is uploaded first.
func (a *App) Register(ctx context.Context) error {
	handle, err := a.ask("Enter handle (3-12 letters or digits)")
	if err != nil {
		return err
	}
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}
	image, err := a.askImage(ctx)
	if err != nil {
		return err
	}

	id, err := a.api.Register(ctx, api.RegisterRequest{
		Handle:   handle,
		Email:    email,
		Password: password,
		Image:    image,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered, id %s. You can login now.\n", id)
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}

	s, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.session = s
	a.saveSession(ctx)

	fmt.Fprintf(a.out, "Logged in as %s\n", s.Handle)
	return nil
}

// Logout drops the session. Nothing is sent to the server: tokens are
// stateless.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.session = nil
	a.saveSession(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	id, err := a.api.WhoAmI(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			a.session = nil
			a.api.Logout()
			a.saveSession(ctx)
		}
		return err
	}
	fmt.Fprintf(a.out, "%s (id %s)\n", a.session.Handle, id)
	return nil
}

func (a *App) ChangeHandle(ctx context.Context) error {
	newHandle, err := a.ask("Enter new handle")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}

	if err := a.api.ChangeHandle(ctx, a.session.Handle, newHandle, password); err != nil {
		return err
	}
	a.session.Handle = newHandle
	a.saveSession(ctx)
	fmt.Fprintln(a.out, "Handle changed")
	return nil
}

func (a *App) ChangeEmail(ctx context.Context) error {
	email, err := a.ask("Enter new email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}

	if err := a.api.ChangeEmail(ctx, a.session.Handle, email, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Email changed")
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	password, err := a.askPassword("Enter current password")
	if err != nil {
		return err
	}
	newPassword, err := a.askPassword("Enter new password")
	if err != nil {
		return err
	}

	if err := a.api.ChangePassword(ctx, a.session.Handle, password, newPassword); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

func (a *App) ChangeImage(ctx context.Context) error {
	image, err := a.askImage(ctx)
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}

	warning, err := a.api.ChangeImage(ctx, a.session.Handle, password, image)
	if err != nil {
		return err
	}
	a.session.Image = image
	a.saveSession(ctx)
	a.printWarning(warning)
	fmt.Fprintln(a.out, "Image changed")
	return nil
}

// ChangeSettings toggles vibration. "settings on" and "settings off" skip
// the prompt.
func (a *App) ChangeSettings(ctx context.Context, args []string) error {
	var vibrate bool
	switch {
	case len(args) == 1 && args[0] == "on":
		vibrate = true
	case len(args) == 1 && args[0] == "off":
		vibrate = false
	case len(args) == 0:
		v, err := getYesNo(a.reader, "Vibrate?", a.out)
		if err != nil {
			return err
		}
		vibrate = v
	default:
		return fmt.Errorf("%w: settings [on|off]", errUsage)
	}

	settings := api.Settings{Vibrate: vibrate}
	if err := a.api.ChangeSettings(ctx, a.session.Handle, settings); err != nil {
		return err
	}
	a.session.Settings = settings
	a.saveSession(ctx)
	fmt.Fprintf(a.out, "Vibrate: %t\n", vibrate)
	return nil
}

func (a *App) DeleteAccount(ctx context.Context) error {
	sure, err := getYesNo(a.reader, "Delete account "+a.session.Handle+"? This cannot be undone.", a.out)
	if err != nil {
		return err
	}
	if !sure {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}

	warning, err := a.api.DeleteAccount(ctx, a.session.Handle, password)
	if err != nil {
		return err
	}
	a.session = nil
	a.saveSession(ctx)
	a.printWarning(warning)
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}

func (a *App) printWarning(w string) {
	if w != "" {
		fmt.Fprintln(a.out, "Warning:", w)
	}
}
