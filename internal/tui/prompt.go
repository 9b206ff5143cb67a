// Package tui renders the interactive questioning session: activity
// prompts, bonus confirmations, and the animated altitude meter.
package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/sorakaya/balloonlog/internal/domain"
)

// SelectActivity asks what the user was doing during the given slot.
func SelectActivity(slot domain.Slot) (domain.Activity, error) {
	options := make([]huh.Option[domain.Activity], 0, len(domain.Activities()))
	for _, a := range domain.Activities() {
		options = append(options, huh.NewOption(a.Label(), a))
	}

	var choice domain.Activity
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.Activity]().
				Title("What were you doing between " + slot.Range() + "?").
				Options(options...).
				Value(&choice),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return 0, err
	}
	return choice, nil
}

// ConfirmBonus asks one of the morning bonus questions.
func ConfirmBonus(q domain.BonusQuestion) (bool, error) {
	var yes bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(q.Prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&yes),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return false, err
	}
	return yes, nil
}
