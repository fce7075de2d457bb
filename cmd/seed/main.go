// cmd/seed populates the database with a small demo dataset: an admin, a
// manager with two salespeople, two customers, a monthly and a yearly
// plan, two add-ons, one active subscription and two paid orders with
// their commissions. Dev only: -drop clears the collections first.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/MuhammadZain243/commission-subscription-backend/config"
	"github.com/MuhammadZain243/commission-subscription-backend/models"
	"github.com/MuhammadZain243/commission-subscription-backend/services"
)

func main() {
	drop := flag.Bool("drop", false, "clear existing collections before seeding")
	flag.Parse()

	env := config.LoadEnv()
	client := config.ConnectDB(env)
	db := client.Database(env.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	defer client.Disconnect(context.Background())

	if *drop {
		for _, coll := range []string{"users", "customers", "plans", "addons", "subscriptions", "orders", "commissions"} {
			if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
				log.Fatalf("failed to clear %s: %v", coll, err)
			}
		}
		log.Println("Cleared existing collections")
	}

	now := time.Now()

	admin := seedUser(ctx, db, env, models.RoleAdmin, "Admin User", "admin@example.com", "admin123", nil)
	manager := seedUser(ctx, db, env, models.RoleManager, "Manager One", "manager@example.com", "manager123", nil)
	rep1 := seedUser(ctx, db, env, models.RoleSalesperson, "Rep Alpha", "rep1@example.com", "rep12345", &manager)
	rep2 := seedUser(ctx, db, env, models.RoleSalesperson, "Rep Beta", "rep2@example.com", "rep12345", &manager)

	custA := insertOne(ctx, db, "customers", models.Customer{
		Name: "Acme Industries", Email: "ops@acme.test", Phone: "+1-555-0100",
		SalespersonID: rep1, IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	custB := insertOne(ctx, db, "customers", models.Customer{
		Name: "Beta Consulting", Email: "it@beta.test", Phone: "+1-555-0200",
		SalespersonID: rep2, IsActive: true, CreatedAt: now, UpdatedAt: now,
	})

	basicMonthly := models.Plan{
		Name: "Basic", Description: "Starter plan for small teams",
		BillingCycle: models.CycleMonthly, Price: 49,
		Features: []string{"Users", "Storage", "Support"},
		Active:   true, CreatedAt: now, UpdatedAt: now,
	}
	basicMonthly.ID = insertOne(ctx, db, "plans", basicMonthly)

	proYearly := models.Plan{
		Name: "Pro", Description: "Advanced plan for growing orgs",
		BillingCycle: models.CycleYearly, Price: 499,
		Features: []string{"Users", "Storage", "Support", "SSO"},
		Active:   true, CreatedAt: now, UpdatedAt: now,
	}
	proYearly.ID = insertOne(ctx, db, "plans", proYearly)

	insertOne(ctx, db, "addons", models.AddOn{
		Name: "Extra Storage 100GB", Description: "One-time storage top-up",
		Price: 20, Active: true, CreatedAt: now, UpdatedAt: now,
	})
	addonTraining := models.AddOn{
		Name: "Onboarding Training", Description: "One-time remote training session",
		Price: 199, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	addonTraining.ID = insertOne(ctx, db, "addons", addonTraining)

	nextBilling := services.NextBillingDate(&basicMonthly, now)
	subA := insertOne(ctx, db, "subscriptions", models.Subscription{
		CustomerID: custA, SalespersonID: rep1, PlanID: basicMonthly.ID,
		Status: models.SubActive, StartDate: now, NextBillingDate: &nextBilling,
		CreatedAt: now, UpdatedAt: now,
	})

	// Initial plan invoice for subA, already paid
	orderPlanA := models.Order{
		CustomerID: custA, SalespersonID: rep1, SubscriptionID: &subA,
		Lines: []models.OrderLine{{
			Kind: models.LinePlan, RefID: basicMonthly.ID,
			Description: "Initial Basic subscription",
			UnitPrice:   basicMonthly.Price, Qty: 1,
		}},
		Total: basicMonthly.Price, Status: models.OrderPaid, PaidAt: &now,
		CreatedAt: now, UpdatedAt: now,
	}
	orderPlanA.ID = insertOne(ctx, db, "orders", orderPlanA)
	seedCommission(ctx, db, &orderPlanA, env.CommissionRate)

	// One-off add-on purchase for custB, already paid
	orderAddonB := models.Order{
		CustomerID: custB, SalespersonID: rep2,
		Lines: []models.OrderLine{{
			Kind: models.LineAddon, RefID: addonTraining.ID,
			Description: addonTraining.Name,
			UnitPrice:   addonTraining.Price, Qty: 2,
		}},
		Total: addonTraining.Price * 2, Status: models.OrderPaid, PaidAt: &now,
		CreatedAt: now, UpdatedAt: now,
	}
	orderAddonB.ID = insertOne(ctx, db, "orders", orderAddonB)
	seedCommission(ctx, db, &orderAddonB, env.CommissionRate)

	log.Println("Seed complete")
	log.Printf("admin=%s manager=%s rep1=%s rep2=%s", admin.Hex(), manager.Hex(), rep1.Hex(), rep2.Hex())
	log.Printf("custA=%s custB=%s subA=%s", custA.Hex(), custB.Hex(), subA.Hex())
}

func seedUser(ctx context.Context, db *mongo.Database, env *config.Env, role, name, email, password string, managerID *primitive.ObjectID) primitive.ObjectID {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), env.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	now := time.Now()
	return insertOne(ctx, db, "users", models.User{
		Role: role, Email: email, Password: string(hashed), Name: name,
		ManagerID: managerID, IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
}

func seedCommission(ctx context.Context, db *mongo.Database, order *models.Order, rate float64) {
	commission, appErr := services.ComputeCommission(order, rate)
	if appErr != nil {
		log.Fatalf("failed to compute commission: %v", appErr)
	}
	insertOne(ctx, db, "commissions", commission)
}

func insertOne(ctx context.Context, db *mongo.Database, collection string, doc interface{}) primitive.ObjectID {
	result, err := db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		log.Fatalf("failed to insert into %s: %v", collection, err)
	}
	return result.InsertedID.(primitive.ObjectID)
}
