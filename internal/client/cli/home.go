package cli

import (
	"context"
	"fmt"
)

func (a *App) CreateHome(ctx context.Context) error {
	name, err := a.ask("Enter home name (3-12 letters or digits)")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter home password")
	if err != nil {
		return err
	}
	image, err := a.askImage(ctx)
	if err != nil {
		return err
	}

	id, err := a.api.CreateHome(ctx, name, password, image)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Home %s created (id %s). Use joinhome to move in.\n", name, id)
	return nil
}

func (a *App) JoinHome(ctx context.Context) error {
	name, err := a.ask("Enter home name")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter home password")
	if err != nil {
		return err
	}

	if err := a.api.JoinHome(ctx, name, a.session.Handle, password); err != nil {
		return err
	}
	a.session.Home = name
	a.saveSession(ctx)
	fmt.Fprintf(a.out, "Joined %s\n", name)
	return nil
}

func (a *App) LeaveHome(ctx context.Context) error {
	if err := a.api.LeaveHome(ctx, a.session.Handle); err != nil {
		return err
	}
	a.session.Home = ""
	a.saveSession(ctx)
	fmt.Fprintln(a.out, "Left home")
	return nil
}
