package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/medkeeper/internal/client/models"
)

func (a *App) List(ctx context.Context) error {
	list, err := a.inventoryService.List(ctx)
	if err != nil {
		return a.handleError(ctx, err)
	}
	a.printMedicines(list)
	return nil
}

// Search filters the fetched list by name or batch number, ignoring case.
func (a *App) Search(ctx context.Context, term string) error {
	list, err := a.inventoryService.List(ctx)
	if err != nil {
		return a.handleError(ctx, err)
	}
	a.printMedicines(models.FilterMedicines(list, term))
	return nil
}

// Expiring shows records that expire within the warning window, expired
// ones included.
func (a *App) Expiring(ctx context.Context) error {
	list, err := a.inventoryService.List(ctx)
	if err != nil {
		return a.handleError(ctx, err)
	}
	a.printMedicines(models.ExpiringMedicines(list, a.now(), a.warningDays))
	return nil
}

// Add collects a draft and submits it. Nothing is sent when a required
// field is missing.
func (a *App) Add(ctx context.Context) error {
	draft, err := a.readMedicine(models.Medicine{})
	if err != nil {
		a.println("Error:", err.Error())
		return err
	}

	if _, err := a.inventoryService.Create(ctx, draft); err != nil {
		return a.handleError(ctx, err)
	}
	a.println("Medicine added.")
	return a.List(ctx)
}

// Edit buffers changes to a local copy of the record and sends them only
// after confirmation.
func (a *App) Edit(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		a.println("Error:", err.Error())
		return err
	}

	list, err := a.inventoryService.List(ctx)
	if err != nil {
		return a.handleError(ctx, err)
	}
	current, ok := models.FindMedicine(list, id)
	if !ok {
		a.println(fmt.Sprintf("No medicine with id %d.", id))
		return fmt.Errorf("medicine %d not found", id)
	}

	edited, err := a.readMedicine(current)
	if err != nil {
		a.println("Error:", err.Error())
		return err
	}
	if !confirm(a.reader, "Save changes?", a.out) {
		a.println("Changes discarded.")
		return nil
	}

	if _, err := a.inventoryService.Update(ctx, id, edited); err != nil {
		return a.handleError(ctx, err)
	}
	a.println("Medicine updated.")
	return a.List(ctx)
}

func (a *App) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		a.println("Error:", err.Error())
		return err
	}
	if !confirm(a.reader, msgConfirmDelete, a.out) {
		a.println("Cancelled.")
		return nil
	}

	if err := a.inventoryService.Delete(ctx, id); err != nil {
		return a.handleError(ctx, err)
	}
	a.println("Medicine deleted.")
	return a.List(ctx)
}

// clearValue empties an optional field that already has a value.
const clearValue = "-"

// readMedicine prompts for every field, offering base's values as defaults.
// The result keeps base's ID.
func (a *App) readMedicine(base models.Medicine) (models.Medicine, error) {
	m := base
	var err error

	if m.Name, err = askWithDefault(a.reader, "Name", base.Name, a.out); err != nil {
		return m, err
	}
	if m.Manufacturer, err = askWithDefault(a.reader, "Manufacturer (- to clear)", base.Manufacturer, a.out); err != nil {
		return m, err
	}
	if strings.TrimSpace(m.Manufacturer) == clearValue {
		m.Manufacturer = ""
	}
	if m.BatchNumber, err = askWithDefault(a.reader, "Batch number", base.BatchNumber, a.out); err != nil {
		return m, err
	}

	qty, err := askWithDefault(a.reader, "Quantity", strconv.Itoa(base.Quantity), a.out)
	if err != nil {
		return m, err
	}
	m.Quantity = models.ParseQuantity(qty)

	expiry, err := askWithDefault(a.reader, "Expiry date (YYYY-MM-DD)", base.ExpiryDate.String(), a.out)
	if err != nil {
		return m, err
	}
	if strings.TrimSpace(expiry) == "" {
		m.ExpiryDate = models.Date{}
	} else if m.ExpiryDate, err = models.ParseDate(expiry); err != nil {
		return m, err
	}

	return m, m.Validate()
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
