package srules

import (
	"testing"

	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOvertimeDailyMultiplierCostEntries(t *testing.T) {
	members, patterns, days := hourlyFixture()
	rule := OvertimeDailyMultiplierRule{MemberIDs: []string{"alice"}, Params: OvertimeDailyMultiplierParams{AfterHours: 6, Factor: 1.5}}
	assignments := []smodel.Assignment{{MemberID: "alice", PatternID: "day", Day: days[0]}}

	entries := rule.Cost(assignments, members, patterns)
	require.Len(t, entries, 1)
	assert.Equal(t, smodel.CategoryOvertime, entries[0].Category)
	// 2h over the 6h threshold, at $20/hr * 0.5 premium = $10/hr => 2000 cents.
	assert.Equal(t, 2000, entries[0].Amount)
}

func TestOvertimeWeeklySurchargeCostEntriesAttributeToLastWeekDay(t *testing.T) {
	members, patterns, days := hourlyFixture()
	rule := OvertimeWeeklySurchargeRule{MemberIDs: []string{"alice"}, Params: OvertimeWeeklySurchargeParams{AfterHours: 10, AmountCentsPerHour: 500}}
	assignments := []smodel.Assignment{
		{MemberID: "alice", PatternID: "day", Day: days[0]},
		{MemberID: "alice", PatternID: "day", Day: days[1]},
	}

	entries := rule.Cost(assignments, members, patterns)
	require.Len(t, entries, 1)
	assert.Equal(t, days[len(days)-1], entries[0].Day)
	// 16h worked - 10h threshold = 6h over, at $5/hr surcharge => 3000 cents.
	assert.Equal(t, 3000, entries[0].Amount)
}

func TestOvertimeWeeklySurchargeNoEntryWhenUnderThreshold(t *testing.T) {
	members, patterns, days := hourlyFixture()
	rule := OvertimeWeeklySurchargeRule{MemberIDs: []string{"alice"}, Params: OvertimeWeeklySurchargeParams{AfterHours: 40, AmountCentsPerHour: 500}}
	assignments := []smodel.Assignment{{MemberID: "alice", PatternID: "day", Day: days[0]}}

	entries := rule.Cost(assignments, members, patterns)
	assert.Empty(t, entries)
}

func TestOvertimeTieredMultiplierAppliesEachBracketOnce(t *testing.T) {
	members, patterns, days := hourlyFixture()
	rule := OvertimeTieredMultiplierRule{
		MemberIDs: []string{"alice"},
		Params: OvertimeTieredMultiplierParams{Tiers: []OvertimeTier{
			{AfterHours: 4, Factor: 1.25},
			{AfterHours: 12, Factor: 1.5},
		}},
	}
	assignments := []smodel.Assignment{
		{MemberID: "alice", PatternID: "day", Day: days[0]},
		{MemberID: "alice", PatternID: "day", Day: days[1]},
	}

	// 16h total worked: bracket [4,12) = 8h at 0.25 premium, bracket [12,∞) = 4h at 0.5 premium.
	entries := rule.Cost(assignments, members, patterns)
	require.Len(t, entries, 2)
	assert.Equal(t, int(float64(8*60)*2000.0/60.0*0.25), entries[0].Amount)
	assert.Equal(t, int(float64(4*60)*2000.0/60.0*0.5), entries[1].Amount)
}

func TestOvertimeTieredMultiplierNoOpWithoutTiers(t *testing.T) {
	members, patterns, days := hourlyFixture()
	rule := OvertimeTieredMultiplierRule{MemberIDs: []string{"alice"}}
	assignments := []smodel.Assignment{{MemberID: "alice", PatternID: "day", Day: days[0]}}

	entries := rule.Cost(assignments, members, patterns)
	assert.Nil(t, entries)
}

func TestOvertimeDailyMultiplierSkipsUninstalledContext(t *testing.T) {
	members, patterns, days := hourlyFixture()
	b := smodel.NewBuilder(members, patterns, days, stime.Monday, false)
	rule := OvertimeDailyMultiplierRule{MemberIDs: []string{"alice"}, Params: OvertimeDailyMultiplierParams{AfterHours: 6, Factor: 1.5}}

	require.NoError(t, b.Compile([]smodel.Rule{rule}))
	assert.False(t, b.CostContext().Installed)
	req, err := b.Finalize()
	require.NoError(t, err)
	assert.Nil(t, req.Objective.Terms)
}
