package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/natman/internal/common"
)

// Home shows the welcome banner and a summary of the park records. Each
// summary line is independent: an unreachable section says so without
// hiding the others.
func (a *App) Home(ctx context.Context) error {
	fmt.Fprintln(a.out, "Добро пожаловать в Лукоморье!")
	a.greet()

	return a.submit(ctx, func(ctx context.Context) error {
		d, err := a.resources.Dashboard(ctx)
		if err != nil {
			return a.alertErr("Error", err)
		}
		fmt.Fprintln(a.out, summaryLine("Игры", len(d.Games.Items), d.Games.Err))
		fmt.Fprintln(a.out, summaryLine("Метки", len(d.Marks.Items), d.Marks.Err))
		fmt.Fprintln(a.out, summaryLine("Регионы", len(d.Regions.Items), d.Regions.Err))
		fmt.Fprintln(a.out, summaryLine("Команды", len(d.Teams.Items), d.Teams.Err))
		return nil
	})
}

func summaryLine(title string, n int, err error) string {
	if err != nil {
		return fmt.Sprintf("%s: недоступно", title)
	}
	return fmt.Sprintf("%s: %d", title, n)
}

// Profile prints the stored profile.
func (a *App) Profile(ctx context.Context) error {
	user, ok := a.holder.User()
	if !ok {
		return a.alertErr("Профиль", common.ErrNotAuthenticated)
	}

	var b strings.Builder
	fmt.Fprintln(&b, user.DisplayName())
	fmt.Fprintln(&b, user.Username)
	if user.Role != "" {
		fmt.Fprintln(&b, user.Role)
	}
	if user.Age > 0 {
		fmt.Fprintf(&b, "Возраст: %d\n", user.Age)
	}
	if user.PhoneNumber != "" {
		fmt.Fprintf(&b, "Телефон: %s\n", user.PhoneNumber)
	}
	if user.Mail != "" {
		fmt.Fprintf(&b, "Почта: %s\n", user.Mail)
	}
	a.alert("Профиль", strings.TrimRight(b.String(), "\n"))
	return nil
}
