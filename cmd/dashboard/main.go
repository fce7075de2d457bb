// cmd/dashboard prints a role-scoped dashboard as indented JSON.
//
// Usage:
//
//	dashboard -role admin [-since YYYY-MM-DD]
//	dashboard -role manager -user <ObjectId> [-since YYYY-MM-DD]
//	dashboard -role salesperson -user <ObjectId> [-since YYYY-MM-DD]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MuhammadZain243/commission-subscription-backend/config"
	"github.com/MuhammadZain243/commission-subscription-backend/repositories"
)

func main() {
	role := flag.String("role", "", "admin|manager|salesperson")
	user := flag.String("user", "", "manager/salesperson _id for scoped dashboards")
	sinceFlag := flag.String("since", "", "metrics window start (YYYY-MM-DD), default last 90 days")
	flag.Parse()

	if *role == "" {
		flag.Usage()
		os.Exit(2)
	}

	var since *time.Time
	if *sinceFlag != "" {
		t, err := time.Parse("2006-01-02", *sinceFlag)
		if err != nil {
			log.Fatalf("invalid -since value: %v", err)
		}
		since = &t
	}
	windowStart := repositories.WindowStart(since)

	env := config.LoadEnv()
	client := config.ConnectDB(env)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Disconnect(ctx)
	}()

	reports := repositories.NewReportRepository(client.Database(env.DBName))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		out interface{}
		err error
	)

	switch *role {
	case "admin":
		out, err = reports.AdminDashboard(ctx, windowStart)
	case "manager":
		id := mustObjectID(*user, "manager")
		out, err = reports.ManagerDashboard(ctx, id, windowStart)
	case "salesperson":
		id := mustObjectID(*user, "salesperson")
		out, err = reports.SalespersonDashboard(ctx, id, windowStart)
	default:
		log.Fatalf("unknown role %q (want admin, manager or salesperson)", *role)
	}
	if err != nil {
		log.Fatalf("dashboard error: %v", err)
	}

	pretty, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode dashboard: %v", err)
	}

	fmt.Printf("====== %s DASHBOARD ======\n", *role)
	fmt.Println(string(pretty))
}

func mustObjectID(raw, label string) primitive.ObjectID {
	if raw == "" {
		log.Fatalf("-user <%sId> is required for the %s dashboard", label, label)
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		log.Fatalf("invalid -user value: %v", err)
	}
	return id
}
