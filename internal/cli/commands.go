package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lockbox/internal/models"
	"github.com/dmitrijs2005/lockbox/internal/securestore"
)

// key returns the entry key: the first command argument when given,
// otherwise a prompt.
func (a *App) key(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, "Entry key", a.out)
}

func (a *App) promptCredential() (models.Credential, error) {
	var c models.Credential
	var err error

	if c.Username, err = GetSimpleText(a.reader, "Username", a.out); err != nil {
		return c, err
	}

	password, err := GetSecret("Password", a.out)
	if err != nil {
		return c, err
	}
	c.Password = string(password)

	if c.URL, err = GetSimpleText(a.reader, "URL (optional)", a.out); err != nil {
		return c, err
	}
	if c.Notes, err = GetSimpleText(a.reader, "Notes (optional)", a.out); err != nil {
		return c, err
	}

	return c, nil
}

func (a *App) add(ctx context.Context, args []string) {
	key, err := a.key(args)
	if err != nil {
		a.report(ctx, err)
		return
	}

	cred, err := a.promptCredential()
	if err != nil {
		a.report(ctx, err)
		return
	}

	if err := a.store.Add(ctx, key, cred); err != nil {
		a.report(ctx, err)
		return
	}
	fmt.Fprintln(a.out, "Saved.")
}

func (a *App) get(ctx context.Context, args []string) {
	key, err := a.key(args)
	if err != nil {
		a.report(ctx, err)
		return
	}

	cred, err := a.store.Retrieve(ctx, key)
	if err != nil {
		a.report(ctx, err)
		return
	}

	fmt.Fprintf(a.out, "Username: %s\n", cred.Username)
	fmt.Fprintf(a.out, "Password: %s\n", cred.Password)
	if cred.URL != "" {
		fmt.Fprintf(a.out, "URL: %s\n", cred.URL)
	}
	if cred.Notes != "" {
		fmt.Fprintf(a.out, "Notes: %s\n", cred.Notes)
	}
}

func (a *App) update(ctx context.Context, args []string) {
	key, err := a.key(args)
	if err != nil {
		a.report(ctx, err)
		return
	}

	cred, err := a.promptCredential()
	if err != nil {
		a.report(ctx, err)
		return
	}

	if err := a.store.Update(ctx, key, cred); err != nil {
		a.report(ctx, err)
		return
	}
	fmt.Fprintln(a.out, "Updated.")
}

func (a *App) upsert(ctx context.Context, args []string) {
	key, err := a.key(args)
	if err != nil {
		a.report(ctx, err)
		return
	}

	cred, err := a.promptCredential()
	if err != nil {
		a.report(ctx, err)
		return
	}

	if err := a.store.Upsert(ctx, key, cred); err != nil {
		a.report(ctx, err)
		return
	}
	fmt.Fprintln(a.out, "Saved.")
}

func (a *App) delete(ctx context.Context, args []string) {
	key, err := a.key(args)
	if err != nil {
		a.report(ctx, err)
		return
	}

	if err := a.store.Delete(ctx, key); err != nil {
		a.report(ctx, err)
		return
	}
	fmt.Fprintln(a.out, "Deleted.")
}

// report prints a friendly message for the expected error kinds and logs
// everything else.
func (a *App) report(ctx context.Context, err error) {
	switch {
	case errors.Is(err, securestore.ErrItemNotFound):
		fmt.Fprintln(a.out, "No such entry.")
	case errors.Is(err, securestore.ErrItemAlreadyExists):
		fmt.Fprintln(a.out, "Entry already exists (use update or upsert).")
	case errors.Is(err, securestore.ErrEmptyKey):
		fmt.Fprintln(a.out, "Entry key must not be empty.")
	default:
		a.log.Error(ctx, "command failed", "error", err)
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}
