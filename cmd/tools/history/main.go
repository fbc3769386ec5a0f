// Command history prints the donation history and points balance of one user.
package main

import (
	"FeastForBeasts/cmd/config"
	migration "FeastForBeasts/cmd/database/migrate"
	"FeastForBeasts/internal/utils"
	"FeastForBeasts/pkg/donation"
	"FeastForBeasts/pkg/reward"
	"context"
	"flag"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

func main() {
	userID := flag.String("user", "", "user id to report on (all users when empty)")
	flag.Parse()

	utils.LoadConfig()
	ctx := context.Background()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal(err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatal(err)
	}

	donations, err := donation.NewDonationRepository(db).GetAllDonations(ctx)
	if err != nil {
		log.Fatal(err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "User", "Type", "Quantity", "Expiry", "Status", "NGO", "Volunteer", "Submitted At"})

	count := 0
	for _, d := range donations {
		if *userID != "" && d.UserID != *userID {
			continue
		}
		t.AppendRow(table.Row{
			d.ID,
			d.UserID,
			d.FoodType,
			d.Quantity.String() + " " + d.QuantityUnit,
			d.ExpiryDate,
			d.Status,
			d.AssignedNgoName,
			d.AssignedVolunteerID,
			d.SubmittedAt.Format("2006-01-02 15:04"),
		})
		count++
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "", "Total", count})
	t.Render()

	if *userID == "" {
		return
	}

	balance, err := reward.NewRewardRepository(db).GetUserBalance(ctx, *userID)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("points balance for %s: %d", *userID, balance)
}
