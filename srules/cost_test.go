package srules

import (
	"testing"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/sscope"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourlyFixture() (sentity.Members, sentity.ShiftPatterns, stime.Days) {
	members := sentity.Members{
		{ID: "alice", RoleIDs: []string{"w"}, Pay: sentity.Hourly{RateCents: 2000}},
		{ID: "bob", RoleIDs: []string{"w"}, Pay: sentity.Salaried{AnnualCents: 5200000, HoursPerWeek: 40}},
	}
	patterns := sentity.ShiftPatterns{{
		ID: "day", RoleIDs: []string{"w"},
		StartTime: stime.TimeOfDay{Hours: 9}, EndTime: stime.TimeOfDay{Hours: 17},
	}}
	days := stime.Days{stime.Day("2024-02-05"), stime.Day("2024-02-06")} // Mon, Tue
	return members, patterns, days
}

func TestMinimizeCostInstallsNormFactorAndPenalizesHourly(t *testing.T) {
	members, patterns, days := hourlyFixture()
	b := smodel.NewBuilder(members, patterns, days, stime.Monday, false)
	rule := &MinimizeCostRule{MemberIDs: []string{"alice", "bob"}}

	require.NoError(t, b.Compile([]smodel.Rule{rule}))
	assert.True(t, b.CostContext().Installed)
	assert.Greater(t, b.CostContext().NormFactor, 0.0)
}

func TestMinimizeCostNoOpWhenNoPay(t *testing.T) {
	members := sentity.Members{{ID: "alice", RoleIDs: []string{"w"}}}
	patterns := sentity.ShiftPatterns{{ID: "day", RoleIDs: []string{"w"}, StartTime: stime.TimeOfDay{Hours: 9}, EndTime: stime.TimeOfDay{Hours: 17}}}
	days := stime.Days{stime.Day("2024-02-05")}
	b := smodel.NewBuilder(members, patterns, days, stime.Monday, false)
	rule := &MinimizeCostRule{MemberIDs: []string{"alice"}}

	require.NoError(t, b.Compile([]smodel.Rule{rule}))
	assert.False(t, b.CostContext().Installed)
}

func TestMinimizeCostHourlyCostEntries(t *testing.T) {
	members, patterns, days := hourlyFixture()
	rule := &MinimizeCostRule{MemberIDs: []string{"alice", "bob"}}
	assignments := []smodel.Assignment{
		{MemberID: "alice", PatternID: "day", Day: days[0]},
		{MemberID: "alice", PatternID: "day", Day: days[1]},
	}

	entries := rule.Cost(assignments, members, patterns)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "alice", e.MemberID)
		assert.Equal(t, smodel.CategoryBase, e.Category)
		assert.Equal(t, 2000*8, e.Amount) // $20/hr * 8h
	}
}

func TestMinimizeCostSalariedDistributesAcrossWorkedDays(t *testing.T) {
	members, patterns, days := hourlyFixture()
	rule := &MinimizeCostRule{MemberIDs: []string{"alice", "bob"}}
	rule.weeks = []stime.Days{days} // simulate a Compile having already run

	assignments := []smodel.Assignment{
		{MemberID: "bob", PatternID: "day", Day: days[0]},
	}
	entries := rule.Cost(assignments, members, patterns)
	require.Len(t, entries, 1)
	assert.Equal(t, "bob", entries[0].MemberID)
	weekly, _ := sentity.WeeklyCostCents(sentity.Salaried{AnnualCents: 5200000, HoursPerWeek: 40})
	assert.Equal(t, weekly, entries[0].Amount)
}

func TestDayCostSurchargeOnlyPricesHourly(t *testing.T) {
	members, patterns, days := hourlyFixture()
	b := smodel.NewBuilder(members, patterns, days, stime.Monday, false)
	minCost := &MinimizeCostRule{MemberIDs: []string{"alice", "bob"}}
	surcharge := DayCostSurchargeRule{MemberIDs: []string{"alice", "bob"}, Params: DayCostSurchargeParams{AmountCentsPerHour: 500}}

	require.NoError(t, b.Compile([]smodel.Rule{minCost, surcharge}))

	assignments := []smodel.Assignment{
		{MemberID: "alice", PatternID: "day", Day: days[0]},
		{MemberID: "bob", PatternID: "day", Day: days[0]},
	}
	entries := surcharge.Cost(assignments, members, patterns)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].MemberID)
	assert.Equal(t, 500*8, entries[0].Amount)
}

func TestTimeCostSurchargeOnlyCountsOverlap(t *testing.T) {
	r := TimeCostSurchargeRule{
		Params: TimeCostSurchargeParams{
			AmountCentsPerHour: 100,
			From:               stime.TimeOfDay{Hours: 22},
			Until:              stime.TimeOfDay{Hours: 23, Minutes: 59},
		},
	}
	p := &sentity.ShiftPattern{StartTime: stime.TimeOfDay{Hours: 20}, EndTime: stime.TimeOfDay{Hours: 23}}
	overlap := r.overlapMinutes(p)
	assert.Equal(t, 60, overlap) // 22:00-23:00
}

func TestOvertimeDailySurchargeSkipsWhenCostContextUninstalled(t *testing.T) {
	members, patterns, days := hourlyFixture()
	b := smodel.NewBuilder(members, patterns, days, stime.Monday, false)
	rule := OvertimeDailySurchargeRule{MemberIDs: []string{"alice"}, Params: OvertimeDailySurchargeParams{AfterHours: 6, AmountCentsPerHour: 500}}

	require.NoError(t, b.Compile([]smodel.Rule{rule}))
	assert.False(t, b.CostContext().Installed)
}

func TestOvertimeDailySurchargeCostEntries(t *testing.T) {
	members, patterns, days := hourlyFixture()
	rule := OvertimeDailySurchargeRule{MemberIDs: []string{"alice"}, Params: OvertimeDailySurchargeParams{AfterHours: 6, AmountCentsPerHour: 500}}
	assignments := []smodel.Assignment{{MemberID: "alice", PatternID: "day", Day: days[0]}}

	entries := rule.Cost(assignments, members, patterns)
	require.Len(t, entries, 1)
	assert.Equal(t, smodel.CategoryOvertime, entries[0].Category)
	assert.Equal(t, 500*2, entries[0].Amount) // 8h worked - 6h threshold = 2h overtime
}

func TestHolidaySurchargeOnlyPricesHolidays(t *testing.T) {
	members, patterns, _ := hourlyFixture()
	rule := HolidaySurchargeRule{MemberIDs: []string{"alice"}, Params: HolidaySurchargeParams{AmountCentsPerHour: 1000, CalendarID: "US"}}

	newYears := stime.Day("2024-01-01")
	assignments := []smodel.Assignment{{MemberID: "alice", PatternID: "day", Day: newYears}}
	entries := rule.Cost(assignments, members, patterns)
	require.Len(t, entries, 1)
	assert.Equal(t, smodel.CategoryPremium, entries[0].Category)
}

func TestBuildUnknownRuleNameErrors(t *testing.T) {
	_, err := Build(sscope.ResolvedRuleConfig{RuleName: "not-a-real-rule"})
	assert.Error(t, err)
}

func TestBuildAllConstructsKnownRules(t *testing.T) {
	cfgs := []sscope.ResolvedRuleConfig{
		{RuleName: "max-hours-day", MemberIDs: []string{"alice"}, Params: map[string]interface{}{"Hours": 8, "Priority": "HIGH"}},
		{RuleName: "minimize-cost", MemberIDs: []string{"alice"}, Params: map[string]interface{}{}},
	}
	rules, err := BuildAll(cfgs)
	require.NoError(t, err)
	require.Len(t, rules, 2)
}
