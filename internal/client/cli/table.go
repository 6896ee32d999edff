package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/medkeeper/internal/client/models"
)

const (
	expiringFlag = "EXPIRING SOON"
	expiredFlag  = "EXPIRED"
)

// printMedicines renders list as an aligned table. Rows past their expiry
// date carry expiredFlag, rows within the warning window expiringFlag.
func (a *App) printMedicines(list []models.Medicine) {
	if len(list) == 0 {
		a.println("No medicines found.")
		return
	}

	now := a.now()
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMANUFACTURER\tBATCH\tQTY\tEXPIRY\t")
	for _, m := range list {
		flag := ""
		switch {
		case m.Expired(now):
			flag = expiredFlag
		case m.ExpiringSoon(now, a.warningDays):
			flag = expiringFlag
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			m.ID, m.Name, m.Manufacturer, m.BatchNumber, m.Quantity, m.ExpiryDate, flag)
	}
	_ = tw.Flush()
}
