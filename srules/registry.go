package srules

import (
	"encoding/json"
	"fmt"

	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/sscope"
)

// decodeParams re-marshals cfg.Params (typically a map[string]interface{}
// produced by the HJSON config loader) into out, a pointer to one of this
// package's *Params structs. A JSON round trip is sufficient here since
// every Params field already matches its wire name case-insensitively.
func decodeParams(cfg sscope.ResolvedRuleConfig, out interface{}) error {
	raw, err := json.Marshal(cfg.Params)
	if err != nil {
		return fmt.Errorf("srules: re-marshal params for %q: %w", cfg.RuleName, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("srules: decode params for %q: %w", cfg.RuleName, err)
	}
	return nil
}

// Build constructs the smodel.Rule named by cfg.RuleName, decoding
// cfg.Params into that rule kind's Params struct. Unknown rule names are
// reported rather than silently skipped, since a typo in rule config should
// surface at compile time, not as a silently-missing constraint.
func Build(cfg sscope.ResolvedRuleConfig) (smodel.Rule, error) {
	switch cfg.RuleName {
	case "max-hours-day":
		var p HoursParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return MaxHoursDayRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "min-hours-day":
		var p HoursParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return MinHoursDayRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "max-hours-week":
		var p HoursParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return MaxHoursWeekRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "min-hours-week":
		var p HoursParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return MinHoursWeekRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "max-shifts-day":
		var p MaxShiftsDayParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return MaxShiftsDayRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "max-consecutive-days":
		var p ConsecutiveDaysParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return MaxConsecutiveDaysRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "min-consecutive-days":
		var p ConsecutiveDaysParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return MinConsecutiveDaysRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "min-rest-between-shifts":
		var p MinRestBetweenShiftsParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return MinRestBetweenShiftsRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "time-off":
		var p TimeOffParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return TimeOffRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "assign-together":
		var p AssignTogetherParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return AssignTogetherRule{Params: p}, nil
	case "location-preference":
		var p LocationPreferenceParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return LocationPreferenceRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "assignment-priority":
		var p AssignmentPriorityParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return AssignmentPriorityRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "minimize-cost":
		var p MinimizeCostParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return &MinimizeCostRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "day-cost-multiplier":
		var p DayCostMultiplierParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return DayCostMultiplierRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "day-cost-surcharge":
		var p DayCostSurchargeParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return DayCostSurchargeRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "time-cost-surcharge":
		var p TimeCostSurchargeParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return TimeCostSurchargeRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "overtime-daily-multiplier":
		var p OvertimeDailyMultiplierParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return OvertimeDailyMultiplierRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "overtime-daily-surcharge":
		var p OvertimeDailySurchargeParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return OvertimeDailySurchargeRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "overtime-weekly-multiplier":
		var p OvertimeWeeklyMultiplierParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return OvertimeWeeklyMultiplierRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "overtime-weekly-surcharge":
		var p OvertimeWeeklySurchargeParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return OvertimeWeeklySurchargeRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "overtime-tiered-multiplier":
		var p OvertimeTieredMultiplierParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return OvertimeTieredMultiplierRule{MemberIDs: cfg.MemberIDs, Time: cfg.Time, Params: p}, nil
	case "holiday-surcharge":
		var p HolidaySurchargeParams
		if err := decodeParams(cfg, &p); err != nil {
			return nil, err
		}
		return HolidaySurchargeRule{MemberIDs: cfg.MemberIDs, Params: p}, nil
	default:
		return nil, fmt.Errorf("srules: unknown rule name %q", cfg.RuleName)
	}
}

// BuildAll constructs every resolved rule config, in order, stopping at the
// first construction error.
func BuildAll(cfgs []sscope.ResolvedRuleConfig) ([]smodel.Rule, error) {
	rules := make([]smodel.Rule, 0, len(cfgs))
	for _, cfg := range cfgs {
		rule, err := Build(cfg)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
