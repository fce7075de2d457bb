package repositories

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MuhammadZain243/commission-subscription-backend/models"
)

func TestWindowStart(t *testing.T) {
	custom := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := WindowStart(&custom); !got.Equal(custom) {
		t.Errorf("WindowStart(custom) = %v, want %v", got, custom)
	}

	before := time.Now().Add(-DefaultWindow)
	got := WindowStart(nil)
	after := time.Now().Add(-DefaultWindow)
	if got.Before(before) || got.After(after) {
		t.Errorf("WindowStart(nil) = %v, want ~now-90d", got)
	}
}

func TestActiveSubsMatch(t *testing.T) {
	match := activeSubsMatch(nil)

	// MRR is present-state: no time window on subscriptions
	if _, ok := match["createdAt"]; ok {
		t.Error("active subs match must not filter by createdAt")
	}
	statuses, ok := match["status"].(bson.M)["$in"].([]string)
	if !ok {
		t.Fatal("status filter missing or wrong shape")
	}
	want := map[string]bool{models.SubActive: true, models.SubTrialing: true}
	if len(statuses) != len(want) {
		t.Fatalf("status $in = %v, want ACTIVE and TRIALING", statuses)
	}
	for _, s := range statuses {
		if !want[s] {
			t.Errorf("unexpected status %q in MRR match", s)
		}
	}
}

func TestActiveSubsMatchMergesExtra(t *testing.T) {
	id := primitive.NewObjectID()
	match := activeSubsMatch(bson.M{"salespersonId": id})
	if match["salespersonId"] != id {
		t.Errorf("salespersonId = %v, want %v", match["salespersonId"], id)
	}
	if _, ok := match["status"]; !ok {
		t.Error("extra fields must not replace the status filter")
	}
}

func TestPaidOrdersMatch(t *testing.T) {
	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	match := paidOrdersMatch(since, nil)

	created, ok := match["createdAt"].(bson.M)
	if !ok || created["$gte"] != since {
		t.Errorf("createdAt filter = %v, want $gte %v", match["createdAt"], since)
	}
	statuses, ok := match["status"].(bson.M)["$in"].([]string)
	if !ok || len(statuses) != 1 || statuses[0] != models.OrderPaid {
		t.Errorf("status filter = %v, want $in [PAID]", match["status"])
	}
}

func TestMRRPipelineNormalization(t *testing.T) {
	pipeline := mrrPipeline(activeSubsMatch(nil))

	var sw bson.M
	for _, stage := range pipeline {
		if fields, ok := stage["$addFields"].(bson.M); ok {
			sw = fields["mrr"].(bson.M)["$switch"].(bson.M)
		}
	}
	if sw == nil {
		t.Fatal("pipeline has no $addFields mrr $switch stage")
	}

	branches := sw["branches"].([]bson.M)
	if len(branches) != 2 {
		t.Fatalf("switch has %d branches, want 2", len(branches))
	}

	// MONTHLY passes the price through
	monthlyCase := branches[0]["case"].(bson.M)["$eq"].([]interface{})
	if monthlyCase[1] != models.CycleMonthly {
		t.Errorf("first branch compares against %v, want MONTHLY", monthlyCase[1])
	}
	if branches[0]["then"] != "$plan.price" {
		t.Errorf("MONTHLY branch yields %v, want $plan.price", branches[0]["then"])
	}

	// YEARLY divides by 12
	yearlyCase := branches[1]["case"].(bson.M)["$eq"].([]interface{})
	if yearlyCase[1] != models.CycleYearly {
		t.Errorf("second branch compares against %v, want YEARLY", yearlyCase[1])
	}
	divide := branches[1]["then"].(bson.M)["$divide"].([]interface{})
	if divide[0] != "$plan.price" || divide[1] != 12 {
		t.Errorf("YEARLY branch divides %v by %v, want $plan.price by 12", divide[0], divide[1])
	}

	// Unknown cycles fall back to the raw price
	if sw["default"] != "$plan.price" {
		t.Errorf("switch default = %v, want $plan.price", sw["default"])
	}
}

func TestMRRPipelineJoinsPlans(t *testing.T) {
	pipeline := mrrPipeline(activeSubsMatch(nil))
	lookup, ok := pipeline[1]["$lookup"].(bson.M)
	if !ok {
		t.Fatal("second stage is not a $lookup")
	}
	if lookup["from"] != "plans" || lookup["localField"] != "planId" {
		t.Errorf("lookup joins %v on %v, want plans on planId", lookup["from"], lookup["localField"])
	}
}

func TestTopSalespeoplePipelineSortAndLimit(t *testing.T) {
	since := time.Now().Add(-DefaultWindow)
	pipeline := topSalespeoplePipeline(since, 10)

	var sawSort, sawLimit bool
	for i, stage := range pipeline {
		if sort, ok := stage["$sort"].(bson.M); ok && !sawLimit {
			if sort["revenue"] != -1 {
				t.Errorf("sort = %v, want revenue descending", sort)
			}
			sawSort = true
			if limit, ok := pipeline[i+1]["$limit"].(int); !ok || limit != 10 {
				t.Errorf("stage after $sort = %v, want $limit 10", pipeline[i+1])
			}
			sawLimit = true
		}
	}
	if !sawSort || !sawLimit {
		t.Error("pipeline missing $sort/$limit stages")
	}

	// Limit applies to the grouped rows, before the display lookup
	lookupIdx := -1
	for i, stage := range pipeline {
		if _, ok := stage["$lookup"]; ok {
			lookupIdx = i
		}
	}
	limitIdx := -1
	for i, stage := range pipeline {
		if _, ok := stage["$limit"]; ok {
			limitIdx = i
		}
	}
	if lookupIdx < limitIdx {
		t.Error("$lookup must come after $limit")
	}
}

func TestTeamPipelinesScopeByRepIDs(t *testing.T) {
	since := time.Now()
	repIDs := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	revMatch := teamRevenuePipeline(since, repIDs)[0]["$match"].(bson.M)
	in := revMatch["salespersonId"].(bson.M)["$in"].([]primitive.ObjectID)
	if len(in) != 2 {
		t.Errorf("revenue $in has %d ids, want 2", len(in))
	}

	commMatch := teamCommissionsPipeline(since, repIDs)[0]["$match"].(bson.M)
	in = commMatch["salespersonId"].(bson.M)["$in"].([]primitive.ObjectID)
	if len(in) != 2 {
		t.Errorf("commissions $in has %d ids, want 2", len(in))
	}
	// Commissions only exist for paid orders; no extra status filter
	if _, ok := commMatch["status"]; ok {
		t.Error("team commissions match must not filter by status")
	}
}

func TestTeamPipelinesEmptyTeam(t *testing.T) {
	// An empty (but non-nil) id slice must survive into $in so a manager
	// with no reports aggregates to nothing instead of a query error.
	repIDs := make([]primitive.ObjectID, 0)
	match := teamRevenuePipeline(time.Now(), repIDs)[0]["$match"].(bson.M)
	in, ok := match["salespersonId"].(bson.M)["$in"].([]primitive.ObjectID)
	if !ok {
		t.Fatal("$in is not an ObjectID slice")
	}
	if in == nil {
		t.Error("$in slice is nil; it must be empty, not nil")
	}
	if len(in) != 0 {
		t.Errorf("$in has %d ids, want 0", len(in))
	}
}

func TestCommissionTotalPipeline(t *testing.T) {
	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	id := primitive.NewObjectID()
	pipeline := commissionTotalPipeline(since, id)

	match := pipeline[0]["$match"].(bson.M)
	if match["salespersonId"] != id {
		t.Errorf("match salespersonId = %v, want %v", match["salespersonId"], id)
	}
	if match["createdAt"].(bson.M)["$gte"] != since {
		t.Errorf("match createdAt = %v, want $gte %v", match["createdAt"], since)
	}

	group := pipeline[1]["$group"].(bson.M)
	if group["total"].(bson.M)["$sum"] != "$salespersonAmount" {
		t.Errorf("group sums %v, want $salespersonAmount", group["total"])
	}
}

func TestUsersByRolePipeline(t *testing.T) {
	pipeline := usersByRolePipeline()
	group := pipeline[0]["$group"].(bson.M)
	if group["_id"] != "$role" {
		t.Errorf("group _id = %v, want $role", group["_id"])
	}
}
