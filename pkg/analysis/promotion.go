package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"coachnet/pkg/network"
	"coachnet/pkg/roster"
	"coachnet/pkg/table"
)

// EdgeKey identifies one hierarchical edge instance in table form.
type EdgeKey struct {
	From string
	To   string
	Team string
	Year string
}

// careerWeights tracks one coach's role weight per season.
type careerWeights struct {
	byYear map[int]float64
	years  []int
}

func careers(records []roster.Record) map[string]*careerWeights {
	out := make(map[string]*careerWeights)
	for _, r := range records {
		if r.Name == "" {
			continue
		}
		c, ok := out[r.Name]
		if !ok {
			c = &careerWeights{byYear: make(map[int]float64)}
			out[r.Name] = c
		}
		w := roster.RoleWeight(r.RoleCategory, r.RoleSubcategory)
		if w > c.byYear[r.Year] {
			c.byYear[r.Year] = w
		}
	}
	for _, c := range out {
		for y := range c.byYear {
			c.years = append(c.years, y)
		}
		sort.Ints(c.years)
	}
	return out
}

// futurePeak returns the coach's highest role weight in any season after
// year, or 0 when there is none.
func (c *careerWeights) futurePeak(year int) float64 {
	peak := 0.0
	for _, y := range c.years {
		if y > year && c.byYear[y] > peak {
			peak = c.byYear[y]
		}
	}
	return peak
}

// PromotionValues computes the promotion value of every hierarchical edge:
// the report's highest future role weight minus their role weight at the
// time of the edge, floored at 0. A report who never advances contributes 0.
func PromotionValues(records []roster.Record, build network.BuildResult) map[EdgeKey]float64 {
	byName := careers(records)
	names := coachNames(build)

	values := make(map[EdgeKey]float64, len(build.Hierarchical))
	for _, e := range build.Hierarchical {
		report := names[e.ToCoachID]
		career, ok := byName[report]
		if !ok {
			continue
		}
		value := career.futurePeak(e.Year) - career.byYear[e.Year]
		if value < 0 {
			value = 0
		}
		values[EdgeKey{
			From: strconv.Itoa(e.FromCoachID),
			To:   strconv.Itoa(e.ToCoachID),
			Team: e.Team,
			Year: strconv.Itoa(e.Year),
		}] = value
	}
	return values
}

func coachNames(build network.BuildResult) map[int]string {
	names := make(map[int]string, len(build.Coaches))
	for _, c := range build.Coaches {
		names[c.ID] = c.Name
	}
	return names
}

// LastYears returns each coach's final roster season.
func LastYears(records []roster.Record) map[string]int {
	out := make(map[string]int)
	for _, r := range records {
		if r.Name == "" {
			continue
		}
		if r.Year > out[r.Name] {
			out[r.Name] = r.Year
		}
	}
	return out
}

// DownstreamByYear rolls promotion values up per (mentor, team, year): how
// far the reports a coach supervised that season later advanced.
func DownstreamByYear(records []roster.Record, build network.BuildResult, communities map[string]string) *table.Table {
	values := PromotionValues(records, build)
	names := coachNames(build)

	type groupKey struct {
		mentor int
		team   string
		year   int
	}
	grouped := make(map[groupKey][]float64)
	var order []groupKey
	for _, e := range build.Hierarchical {
		key := groupKey{mentor: e.FromCoachID, team: e.Team, year: e.Year}
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		ek := EdgeKey{
			From: strconv.Itoa(e.FromCoachID),
			To:   strconv.Itoa(e.ToCoachID),
			Team: e.Team,
			Year: strconv.Itoa(e.Year),
		}
		grouped[key] = append(grouped[key], values[ek])
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].mentor != order[j].mentor {
			return order[i].mentor < order[j].mentor
		}
		if order[i].year != order[j].year {
			return order[i].year < order[j].year
		}
		return order[i].team < order[j].team
	})

	columns := []string{"from_coach_id", "community", "coach", "team", "year", "num_reports", "median_oe_future_value", "total_oe_future_value"}
	rows := make([][]string, 0, len(order))
	for _, key := range order {
		vals := grouped[key]
		id := strconv.Itoa(key.mentor)
		rows = append(rows, []string{
			id,
			communities[id],
			names[key.mentor],
			key.team,
			strconv.Itoa(key.year),
			strconv.Itoa(len(vals)),
			formatFloat(median(vals)),
			formatFloat(sum(vals)),
		})
	}
	return table.New(columns, rows)
}

// DownstreamOverall rolls promotion values up per mentor across their whole
// career.
func DownstreamOverall(records []roster.Record, build network.BuildResult, communities map[string]string) *table.Table {
	values := PromotionValues(records, build)
	names := coachNames(build)
	byName := careers(records)

	lastTeam := make(map[string]string)
	lastYear := make(map[string]int)
	for _, r := range records {
		if r.Name == "" {
			continue
		}
		if r.Year >= lastYear[r.Name] {
			lastYear[r.Name] = r.Year
			lastTeam[r.Name] = r.Team
		}
	}

	grouped := make(map[int][]float64)
	byMentorYear := make(map[int]map[int]float64)
	var order []int
	for _, e := range build.Hierarchical {
		if _, ok := grouped[e.FromCoachID]; !ok {
			order = append(order, e.FromCoachID)
			byMentorYear[e.FromCoachID] = make(map[int]float64)
		}
		ek := EdgeKey{
			From: strconv.Itoa(e.FromCoachID),
			To:   strconv.Itoa(e.ToCoachID),
			Team: e.Team,
			Year: strconv.Itoa(e.Year),
		}
		grouped[e.FromCoachID] = append(grouped[e.FromCoachID], values[ek])
		byMentorYear[e.FromCoachID][e.Year] += values[ek]
	}
	sort.Ints(order)

	columns := []string{"from_coach_id", "community", "coach", "last_team", "last_year", "years_active", "total_reports", "median_oe_future_value", "total_oe_future_value", "total_value_by_year"}
	rows := make([][]string, 0, len(order))
	for _, mentor := range order {
		vals := grouped[mentor]
		name := names[mentor]
		id := strconv.Itoa(mentor)

		yearsActive := 0
		if c, ok := byName[name]; ok {
			yearsActive = len(c.years)
		}

		rows = append(rows, []string{
			id,
			communities[id],
			name,
			lastTeam[name],
			strconv.Itoa(lastYear[name]),
			strconv.Itoa(yearsActive),
			strconv.Itoa(len(vals)),
			formatFloat(median(vals)),
			formatFloat(sum(vals)),
			formatYearTotals(byMentorYear[mentor]),
		})
	}
	return table.New(columns, rows)
}

// CommunitySummary aggregates each community's internal hierarchical edges:
// edge count, total promotion value, mean promotion value.
func CommunitySummary(records []roster.Record, build network.BuildResult, communities map[string]string) *table.Table {
	values := PromotionValues(records, build)

	grouped := make(map[string][]float64)
	for _, e := range build.Hierarchical {
		from := strconv.Itoa(e.FromCoachID)
		to := strconv.Itoa(e.ToCoachID)
		c := communities[from]
		if c == "" || communities[to] != c {
			continue
		}
		ek := EdgeKey{From: from, To: to, Team: e.Team, Year: strconv.Itoa(e.Year)}
		grouped[c] = append(grouped[c], values[ek])
	}

	labels := make([]string, 0, len(grouped))
	for c := range grouped {
		labels = append(labels, c)
	}
	sort.Slice(labels, func(i, j int) bool {
		a, errA := strconv.Atoi(labels[i])
		b, errB := strconv.Atoi(labels[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return labels[i] < labels[j]
	})

	columns := []string{"community", "Count", "Total_oe_promotions", "Mean_oe_promotions"}
	rows := make([][]string, 0, len(labels))
	for _, c := range labels {
		vals := grouped[c]
		total := sum(vals)
		mean := 0.0
		if len(vals) > 0 {
			mean = total / float64(len(vals))
		}
		rows = append(rows, []string{
			c,
			strconv.Itoa(len(vals)),
			formatFloat(total),
			formatFloat(mean),
		})
	}
	return table.New(columns, rows)
}

// InfluenceTable renders PageRank scores with each coach's name and final
// season, highest score first.
func InfluenceTable(build network.BuildResult, records []roster.Record, scores map[string]float64) *table.Table {
	lastYear := LastYears(records)

	type row struct {
		id    int
		name  string
		score float64
	}
	out := make([]row, 0, len(build.Coaches))
	for _, c := range build.Coaches {
		out = append(out, row{id: c.ID, name: c.Name, score: scores[strconv.Itoa(c.ID)]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].id < out[j].id
	})

	columns := []string{"coach_id", "coach", "last_year", "Combined_influence_score"}
	rows := make([][]string, 0, len(out))
	for _, r := range out {
		rows = append(rows, []string{
			strconv.Itoa(r.id),
			r.name,
			strconv.Itoa(lastYear[r.name]),
			formatFloat(r.score),
		})
	}
	return table.New(columns, rows)
}

// NodeTableWithCommunities renders the coaches as a node table with the
// community assignment column attached.
func NodeTableWithCommunities(build network.BuildResult, communities map[string]string) *table.Table {
	columns := []string{"coach_id", "coach", "community"}
	rows := make([][]string, 0, len(build.Coaches))
	for _, c := range build.Coaches {
		id := strconv.Itoa(c.ID)
		rows = append(rows, []string{id, c.Name, communities[id]})
	}
	return table.New(columns, rows)
}

func sum(vals []float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatYearTotals(byYear map[int]float64) string {
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	parts := make([]string, 0, len(years))
	for _, y := range years {
		parts = append(parts, fmt.Sprintf("%d=%s", y, formatFloat(byYear[y])))
	}
	return strings.Join(parts, ";")
}
