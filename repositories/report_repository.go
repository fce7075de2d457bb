// repositories/report_repository.go
package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/MuhammadZain243/commission-subscription-backend/models"
	"github.com/MuhammadZain243/commission-subscription-backend/utils"
)

// DefaultWindow is the metrics window when the caller supplies none
const DefaultWindow = 90 * 24 * time.Hour

// ReportRepository builds the role-scoped dashboards. Every call re-reads
// the relevant collections; the independent sub-aggregations of one
// dashboard run concurrently and merge into disjoint fields of the result.
// If any sub-query fails the whole report fails.
type ReportRepository struct {
	db *mongo.Database
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{db: db}
}

// WindowStart resolves the caller-supplied window start, defaulting to
// now - 90 days.
func WindowStart(since *time.Time) time.Time {
	if since != nil {
		return *since
	}
	return time.Now().Add(-DefaultWindow)
}

// ---------- pipelines ----------

// activeSubsMatch selects the subscriptions that contribute to MRR. There
// is deliberately no time-window filter here: MRR is a current-state
// metric, unlike the windowed revenue and commission rollups.
func activeSubsMatch(extra bson.M) bson.M {
	match := bson.M{"status": bson.M{"$in": []string{models.SubActive, models.SubTrialing}}}
	for k, v := range extra {
		match[k] = v
	}
	return match
}

// paidOrdersMatch selects paid orders inside the window
func paidOrdersMatch(since time.Time, extra bson.M) bson.M {
	match := bson.M{
		"createdAt": bson.M{"$gte": since},
		"status":    bson.M{"$in": []string{models.OrderPaid}},
	}
	for k, v := range extra {
		match[k] = v
	}
	return match
}

// mrrPipeline estimates MRR for the matched subscriptions by looking up
// each plan's price and billing cycle and normalizing to a monthly figure
// (the in-database counterpart of services.MonthlyEquivalent).
func mrrPipeline(match bson.M) []bson.M {
	return []bson.M{
		{"$match": match},
		{"$lookup": bson.M{
			"from":         "plans",
			"localField":   "planId",
			"foreignField": "_id",
			"as":           "plan",
		}},
		{"$unwind": "$plan"},
		{"$addFields": bson.M{
			"mrr": bson.M{"$switch": bson.M{
				"branches": []bson.M{
					{
						"case": bson.M{"$eq": []interface{}{"$plan.billingCycle", models.CycleMonthly}},
						"then": "$plan.price",
					},
					{
						"case": bson.M{"$eq": []interface{}{"$plan.billingCycle", models.CycleYearly}},
						"then": bson.M{"$divide": []interface{}{"$plan.price", 12}},
					},
				},
				"default": "$plan.price",
			}},
		}},
		{"$group": bson.M{
			"_id":        nil,
			"activeSubs": bson.M{"$sum": 1},
			"mrr":        bson.M{"$sum": "$mrr"},
		}},
		{"$project": bson.M{"_id": 0}},
	}
}

// revenueStatsPipeline rolls matched orders up into a single stats row
func revenueStatsPipeline(match bson.M) []bson.M {
	return []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":         nil,
			"orders":      bson.M{"$sum": 1},
			"revenue":     bson.M{"$sum": "$total"},
			"avgOrder":    bson.M{"$avg": "$total"},
			"lastOrderAt": bson.M{"$max": "$createdAt"},
		}},
		{"$project": bson.M{"_id": 0}},
	}
}

func usersByRolePipeline() []bson.M {
	return []bson.M{
		{"$group": bson.M{"_id": "$role", "count": bson.M{"$sum": 1}}},
		{"$project": bson.M{"role": "$_id", "count": 1, "_id": 0}},
		{"$sort": bson.M{"role": 1}},
	}
}

// repLookupStages joins a per-salesperson group back to users for display
// fields, keeping the listed group fields.
func repLookupStages(keep bson.M) []bson.M {
	project := bson.M{
		"_id":           0,
		"salespersonId": "$rep._id",
		"name":          "$rep.name",
		"email":         "$rep.email",
	}
	for k, v := range keep {
		project[k] = v
	}
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "rep",
		}},
		{"$unwind": "$rep"},
		{"$project": project},
	}
}

// topSalespeoplePipeline ranks salespeople by windowed paid revenue.
// Ties on equal revenue have no secondary sort key; their relative order
// is whatever the database yields.
func topSalespeoplePipeline(since time.Time, limit int) []bson.M {
	pipeline := []bson.M{
		{"$match": paidOrdersMatch(since, nil)},
		{"$group": bson.M{
			"_id":     "$salespersonId",
			"revenue": bson.M{"$sum": "$total"},
			"orders":  bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"revenue": -1}},
		{"$limit": limit},
	}
	return append(pipeline, repLookupStages(bson.M{"revenue": 1, "orders": 1})...)
}

func customersByRepPipeline() []bson.M {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$salespersonId", "customers": bson.M{"$sum": 1}}},
	}
	pipeline = append(pipeline, repLookupStages(bson.M{"customers": 1})...)
	return append(pipeline, bson.M{"$sort": bson.M{"customers": -1}})
}

func teamRevenuePipeline(since time.Time, repIDs []primitive.ObjectID) []bson.M {
	pipeline := []bson.M{
		{"$match": paidOrdersMatch(since, bson.M{"salespersonId": bson.M{"$in": repIDs}})},
		{"$group": bson.M{
			"_id":         "$salespersonId",
			"revenue":     bson.M{"$sum": "$total"},
			"orders":      bson.M{"$sum": 1},
			"lastOrderAt": bson.M{"$max": "$createdAt"},
		}},
	}
	pipeline = append(pipeline, repLookupStages(bson.M{"revenue": 1, "orders": 1, "lastOrderAt": 1})...)
	return append(pipeline, bson.M{"$sort": bson.M{"revenue": -1}})
}

func teamCommissionsPipeline(since time.Time, repIDs []primitive.ObjectID) []bson.M {
	pipeline := []bson.M{
		{"$match": bson.M{
			"createdAt":     bson.M{"$gte": since},
			"salespersonId": bson.M{"$in": repIDs},
		}},
		{"$group": bson.M{"_id": "$salespersonId", "total": bson.M{"$sum": "$salespersonAmount"}}},
	}
	pipeline = append(pipeline, repLookupStages(bson.M{"total": 1})...)
	return append(pipeline, bson.M{"$sort": bson.M{"total": -1}})
}

func commissionTotalPipeline(since time.Time, salespersonID primitive.ObjectID) []bson.M {
	return []bson.M{
		{"$match": bson.M{
			"createdAt":     bson.M{"$gte": since},
			"salespersonId": salespersonID,
		}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$salespersonAmount"}}},
		{"$project": bson.M{"_id": 0}},
	}
}

// ---------- execution ----------

func (r *ReportRepository) aggregate(ctx context.Context, collection string, pipeline []bson.M, out interface{}) error {
	cursor, err := r.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func (r *ReportRepository) find(ctx context.Context, collection string, filter bson.M, projection bson.M, out interface{}) error {
	cursor, err := r.db.Collection(collection).Find(ctx, filter, options.Find().SetProjection(projection))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// AdminDashboard builds the organization-wide rollup for [since, now)
func (r *ReportRepository) AdminDashboard(ctx context.Context, since time.Time) (*models.AdminReport, error) {
	report := &models.AdminReport{
		UsersByRole:    []models.RoleCount{},
		Plans:          []models.Plan{},
		Addons:         []models.AddOn{},
		TopSalespeople: []models.RepRevenue{},
		CustomersByRep: []models.RepCustomers{},
		WindowStart:    since,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.aggregate(gctx, "users", usersByRolePipeline(), &report.UsersByRole)
	})
	g.Go(func() error {
		return r.find(gctx, "plans", bson.M{},
			bson.M{"_id": 1, "name": 1, "price": 1, "billingCycle": 1, "features": 1, "active": 1},
			&report.Plans)
	})
	g.Go(func() error {
		return r.find(gctx, "addons", bson.M{},
			bson.M{"_id": 1, "name": 1, "price": 1, "active": 1},
			&report.Addons)
	})
	g.Go(func() error {
		var rows []models.RevenueStats
		if err := r.aggregate(gctx, "orders", revenueStatsPipeline(paidOrdersMatch(since, nil)), &rows); err != nil {
			return err
		}
		if len(rows) > 0 {
			report.RevenueLast90d = rows[0]
		}
		return nil
	})
	g.Go(func() error {
		var rows []models.MRRStats
		if err := r.aggregate(gctx, "subscriptions", mrrPipeline(activeSubsMatch(nil)), &rows); err != nil {
			return err
		}
		if len(rows) > 0 {
			report.MRR = rows[0]
		}
		return nil
	})
	g.Go(func() error {
		return r.aggregate(gctx, "orders", topSalespeoplePipeline(since, 10), &report.TopSalespeople)
	})
	g.Go(func() error {
		return r.aggregate(gctx, "customers", customersByRepPipeline(), &report.CustomersByRep)
	})

	if err := g.Wait(); err != nil {
		return nil, utils.NewInternalError("failed to build admin dashboard", err)
	}
	return report, nil
}

// ManagerDashboard builds the rollup scoped to one manager's direct
// reports. A manager with zero reports gets empty lists and zero
// aggregates, not an error.
func (r *ReportRepository) ManagerDashboard(ctx context.Context, managerID primitive.ObjectID, since time.Time) (*models.ManagerReport, error) {
	if managerID.IsZero() {
		return nil, utils.NewValidationError("managerId is required for the manager dashboard")
	}

	report := &models.ManagerReport{
		ManagerID:          managerID,
		Reps:               []models.UserSummary{},
		Customers:          []models.CustomerSummary{},
		SalesLast90d:       []models.RepRevenue{},
		CommissionsLast90d: []models.RepCommission{},
		WindowStart:        since,
	}

	// Resolve the team first; every other aggregate is filtered by it
	err := r.find(ctx, "users",
		bson.M{"role": models.RoleSalesperson, "managerId": managerID},
		bson.M{"_id": 1, "name": 1, "email": 1, "createdAt": 1},
		&report.Reps)
	if err != nil {
		return nil, utils.NewInternalError("failed to resolve manager team", err)
	}

	repIDs := make([]primitive.ObjectID, 0, len(report.Reps))
	for _, rep := range report.Reps {
		repIDs = append(repIDs, rep.ID)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.find(gctx, "customers",
			bson.M{"salespersonId": bson.M{"$in": repIDs}},
			bson.M{"_id": 1, "name": 1, "email": 1, "phone": 1, "salespersonId": 1},
			&report.Customers)
	})
	g.Go(func() error {
		return r.aggregate(gctx, "orders", teamRevenuePipeline(since, repIDs), &report.SalesLast90d)
	})
	g.Go(func() error {
		var rows []models.MRRStats
		match := activeSubsMatch(bson.M{"salespersonId": bson.M{"$in": repIDs}})
		if err := r.aggregate(gctx, "subscriptions", mrrPipeline(match), &rows); err != nil {
			return err
		}
		if len(rows) > 0 {
			report.MRR = rows[0]
		}
		return nil
	})
	g.Go(func() error {
		return r.aggregate(gctx, "commissions", teamCommissionsPipeline(since, repIDs), &report.CommissionsLast90d)
	})

	if err := g.Wait(); err != nil {
		return nil, utils.NewInternalError("failed to build manager dashboard", err)
	}
	return report, nil
}

// SalespersonDashboard builds the rollup scoped to a single salesperson
func (r *ReportRepository) SalespersonDashboard(ctx context.Context, salespersonID primitive.ObjectID, since time.Time) (*models.SalespersonReport, error) {
	if salespersonID.IsZero() {
		return nil, utils.NewValidationError("salespersonId is required for the salesperson dashboard")
	}

	report := &models.SalespersonReport{
		Customers:   []models.CustomerSummary{},
		WindowStart: since,
	}

	var me models.UserSummary
	err := r.db.Collection("users").FindOne(ctx,
		bson.M{"_id": salespersonID},
		options.FindOne().SetProjection(bson.M{"_id": 1, "name": 1, "email": 1, "role": 1, "managerId": 1}),
	).Decode(&me)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewNotFoundError("salesperson not found")
		}
		return nil, utils.NewInternalError("failed to load salesperson", err)
	}
	report.Me = &me

	// One level up, nullable
	if me.ManagerID != nil {
		var manager models.UserSummary
		err = r.db.Collection("users").FindOne(ctx,
			bson.M{"_id": *me.ManagerID},
			options.FindOne().SetProjection(bson.M{"_id": 1, "name": 1, "email": 1}),
		).Decode(&manager)
		if err != nil && err != mongo.ErrNoDocuments {
			return nil, utils.NewInternalError("failed to load manager", err)
		}
		if err == nil {
			report.Manager = &manager
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.find(gctx, "customers",
			bson.M{"salespersonId": salespersonID},
			bson.M{"_id": 1, "name": 1, "email": 1, "phone": 1},
			&report.Customers)
	})
	g.Go(func() error {
		var rows []models.RevenueStats
		match := paidOrdersMatch(since, bson.M{"salespersonId": salespersonID})
		if err := r.aggregate(gctx, "orders", revenueStatsPipeline(match), &rows); err != nil {
			return err
		}
		if len(rows) > 0 {
			report.SalesLast90d = rows[0]
		}
		return nil
	})
	g.Go(func() error {
		var rows []struct {
			Total float64 `bson:"total"`
		}
		if err := r.aggregate(gctx, "commissions", commissionTotalPipeline(since, salespersonID), &rows); err != nil {
			return err
		}
		if len(rows) > 0 {
			report.CommissionsLast90d = rows[0].Total
		}
		return nil
	})
	g.Go(func() error {
		var rows []models.MRRStats
		match := activeSubsMatch(bson.M{"salespersonId": salespersonID})
		if err := r.aggregate(gctx, "subscriptions", mrrPipeline(match), &rows); err != nil {
			return err
		}
		if len(rows) > 0 {
			report.MRR = rows[0]
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, utils.NewInternalError("failed to build salesperson dashboard", err)
	}
	return report, nil
}
