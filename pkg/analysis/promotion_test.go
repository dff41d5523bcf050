package analysis

import (
	"testing"

	"coachnet/pkg/network"
	"coachnet/pkg/roster"
)

// promotionRecords builds a two-season fixture: in 2010 the head coach
// supervises two offensive position coaches; by 2012 one of them has become a
// coordinator and the other has left coaching.
func promotionRecords() []roster.Record {
	return []roster.Record{
		{Name: "Mentor", Team: "KC", Year: 2010, RoleCategory: roster.RoleHeadCoach, SideOfBall: "none"},
		{Name: "Riser", Team: "KC", Year: 2010, RoleCategory: roster.RolePositionCoachOffense, SideOfBall: "offense"},
		{Name: "Stayer", Team: "KC", Year: 2010, RoleCategory: roster.RolePositionCoachOffense, SideOfBall: "offense"},
		{Name: "Riser", Team: "CHI", Year: 2012, RoleCategory: roster.RoleCoordinator, RoleSubcategory: "Offensive Coordinator", SideOfBall: "offense"},
	}
}

func TestPromotionValues(t *testing.T) {
	records := promotionRecords()
	build := network.BuildEdges(records)

	values := PromotionValues(records, build)

	// Mentor is coach 1, Riser coach 2, Stayer coach 3.
	riserKey := EdgeKey{From: "1", To: "2", Team: "KC", Year: "2010"}
	stayerKey := EdgeKey{From: "1", To: "3", Team: "KC", Year: "2010"}

	// Riser: position coach 0.4 in 2010, coordinator 0.8 later.
	if got := values[riserKey]; got != 0.4 {
		t.Fatalf("expected promotion value 0.4 for the riser, got %v", got)
	}
	// Stayer never advances.
	if got := values[stayerKey]; got != 0 {
		t.Fatalf("expected promotion value 0 for the stayer, got %v", got)
	}
}

func TestPromotionValues_FlooredAtZero(t *testing.T) {
	// A coordinator demoted to position coach must not produce a negative
	// value on the edge above them.
	records := []roster.Record{
		{Name: "Boss", Team: "KC", Year: 2010, RoleCategory: roster.RoleHeadCoach, SideOfBall: "none"},
		{Name: "Faller", Team: "KC", Year: 2010, RoleCategory: roster.RoleCoordinator, SideOfBall: "offense"},
		{Name: "Faller", Team: "CHI", Year: 2012, RoleCategory: roster.RolePositionCoachOffense, SideOfBall: "offense"},
	}
	build := network.BuildEdges(records)

	values := PromotionValues(records, build)

	key := EdgeKey{From: "1", To: "2", Team: "KC", Year: "2010"}
	if got := values[key]; got != 0 {
		t.Fatalf("expected floored value 0, got %v", got)
	}
}

func TestLastYears(t *testing.T) {
	records := promotionRecords()
	last := LastYears(records)

	if last["Mentor"] != 2010 {
		t.Fatalf("expected 2010, got %d", last["Mentor"])
	}
	if last["Riser"] != 2012 {
		t.Fatalf("expected 2012, got %d", last["Riser"])
	}
}

func TestDownstreamByYear(t *testing.T) {
	records := promotionRecords()
	build := network.BuildEdges(records)
	communities := map[string]string{"1": "0", "2": "0", "3": "0"}

	tbl := DownstreamByYear(records, build, communities)

	if tbl.Len() != 1 {
		t.Fatalf("expected 1 rollup row, got %d", tbl.Len())
	}
	if got := tbl.Cell(0, "from_coach_id"); got != "1" {
		t.Fatalf("expected mentor id 1, got %q", got)
	}
	if got := tbl.Cell(0, "num_reports"); got != "2" {
		t.Fatalf("expected 2 reports, got %q", got)
	}
	if got := tbl.Cell(0, "total_oe_future_value"); got != "0.4" {
		t.Fatalf("expected total 0.4, got %q", got)
	}
	// Median over {0, 0.4}.
	if got := tbl.Cell(0, "median_oe_future_value"); got != "0.2" {
		t.Fatalf("expected median 0.2, got %q", got)
	}
	if got := tbl.Cell(0, "community"); got != "0" {
		t.Fatalf("expected community 0, got %q", got)
	}
}

func TestDownstreamOverall(t *testing.T) {
	records := promotionRecords()
	build := network.BuildEdges(records)

	tbl := DownstreamOverall(records, build, map[string]string{})

	if tbl.Len() != 1 {
		t.Fatalf("expected 1 mentor row, got %d", tbl.Len())
	}
	if got := tbl.Cell(0, "coach"); got != "Mentor" {
		t.Fatalf("expected Mentor, got %q", got)
	}
	if got := tbl.Cell(0, "last_team"); got != "KC" {
		t.Fatalf("expected KC, got %q", got)
	}
	if got := tbl.Cell(0, "years_active"); got != "1" {
		t.Fatalf("expected 1 active year, got %q", got)
	}
	if got := tbl.Cell(0, "total_reports"); got != "2" {
		t.Fatalf("expected 2 reports, got %q", got)
	}
	if got := tbl.Cell(0, "total_value_by_year"); got != "2010=0.4" {
		t.Fatalf("unexpected year totals: %q", got)
	}
}

func TestCommunitySummary(t *testing.T) {
	records := promotionRecords()
	build := network.BuildEdges(records)

	// All three coaches in one community: both edges are internal.
	tbl := CommunitySummary(records, build, map[string]string{"1": "0", "2": "0", "3": "0"})
	if tbl.Len() != 1 {
		t.Fatalf("expected 1 community row, got %d", tbl.Len())
	}
	if got := tbl.Cell(0, "Count"); got != "2" {
		t.Fatalf("expected 2 internal edges, got %q", got)
	}
	if got := tbl.Cell(0, "Total_oe_promotions"); got != "0.4" {
		t.Fatalf("expected total 0.4, got %q", got)
	}
	if got := tbl.Cell(0, "Mean_oe_promotions"); got != "0.2" {
		t.Fatalf("expected mean 0.2, got %q", got)
	}

	// Split communities: the mentor's edges cross the boundary and drop out.
	tbl = CommunitySummary(records, build, map[string]string{"1": "0", "2": "1", "3": "1"})
	if tbl.Len() != 0 {
		t.Fatalf("expected no internal edges, got %d rows", tbl.Len())
	}
}

func TestInfluenceTable_Ordering(t *testing.T) {
	records := promotionRecords()
	build := network.BuildEdges(records)

	scores := map[string]float64{"1": 0.5, "2": 0.3, "3": 0.2}
	tbl := InfluenceTable(build, records, scores)

	if tbl.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", tbl.Len())
	}
	if got := tbl.Cell(0, "coach"); got != "Mentor" {
		t.Fatalf("expected highest score first, got %q", got)
	}
	if got := tbl.Cell(0, "Combined_influence_score"); got != "0.5" {
		t.Fatalf("expected 0.5, got %q", got)
	}
	if got := tbl.Cell(1, "last_year"); got != "2012" {
		t.Fatalf("expected Riser's last year 2012, got %q", got)
	}
}

func TestMedian(t *testing.T) {
	if got := median(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
	if got := median([]float64{3, 1, 2}); got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
	if got := median([]float64{4, 1, 2, 3}); got != 2.5 {
		t.Fatalf("expected 2.5, got %v", got)
	}
}
