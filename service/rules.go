package service

import (
	"fmt"
	"log/slog"
	"math"

	"energytrack.app/clock"
	"energytrack.app/errors"
	"energytrack.app/metrics"
	"energytrack.app/repository"
)

// Rule identifiers used for logging and metrics labels
const (
	RuleMissingDailyConsumption = "missing_daily_consumption"
	RuleMissingMonthlyGoal      = "missing_monthly_goal"
	RuleNearGoalLimit           = "near_goal_limit"
	RuleGoalExceeded            = "goal_exceeded"
	RulePositiveProgress        = "positive_progress"
	RuleMonthEndSummary         = "month_end_summary"
)

// Notification titles. Dedup matches on the exact title within a calendar
// day, so these must stay stable.
const (
	titleMissingDaily     = "Daily Consumption Reminder"
	titleMissingGoal      = "Missing Monthly Goal"
	titleNearLimit        = "Near Goal Limit"
	titleGoalExceeded     = "Goal Exceeded"
	titlePositiveProgress = "Great Progress"
	titleMonthEndSummary  = "Monthly Summary"
)

// The daily-consumption reminder only fires in the evening
const reminderHour = 18

// Positive progress requires at least this share of savings over
// savings-plus-consumption
const progressThresholdPercent = 15

// ruleMessage is the output of a rule check: a notification to emit,
// or nil for "condition not met"
type ruleMessage struct {
	name        string
	description string
}

// ruleCheck is a pure predicate over one user's current state
type ruleCheck func(userID uint) (*ruleMessage, error)

type rule struct {
	id    string
	check ruleCheck
}

// RuleEngine evaluates the fixed set of automatic notification rules. Every
// rule is independent: one rule's failure is logged and skipped without
// affecting its siblings, and a batch continues past a failing user.
type RuleEngine struct {
	consumptionRepo *repository.DailyConsumptionRepository
	goalRepo        *repository.GoalRepository
	savingRepo      *repository.SavingRepository
	userRepo        *repository.UserRepository
	notifications   NotificationServiceInterface
	clock           clock.Clock
	metrics         *metrics.RuleMetrics
}

// NewRuleEngine creates the automatic notification rule engine
func NewRuleEngine(
	consumptionRepo *repository.DailyConsumptionRepository,
	goalRepo *repository.GoalRepository,
	savingRepo *repository.SavingRepository,
	userRepo *repository.UserRepository,
	notifications NotificationServiceInterface,
	clk clock.Clock,
) *RuleEngine {
	return &RuleEngine{
		consumptionRepo: consumptionRepo,
		goalRepo:        goalRepo,
		savingRepo:      savingRepo,
		userRepo:        userRepo,
		notifications:   notifications,
		clock:           clk,
		metrics:         metrics.NewRuleMetrics(),
	}
}

// evaluate runs one rule for one user through the shared emit pipeline.
// Errors never propagate: they are logged, counted and swallowed so sibling
// rules and users keep running.
func (e *RuleEngine) evaluate(r rule, userID uint) {
	e.metrics.RecordEvaluation(r.id)

	msg, err := r.check(userID)
	if err != nil {
		e.metrics.RecordFailure(r.id)
		slog.Error("Rule evaluation failed", "rule", r.id, "user_id", userID, "error", err)
		return
	}
	if msg == nil {
		return
	}

	created, err := e.notifications.CreateAutomatic(userID, msg.name, msg.description)
	if err != nil {
		e.metrics.RecordFailure(r.id)
		slog.Error("Failed to store rule notification", "rule", r.id, "user_id", userID, "error", err)
		return
	}
	if created {
		e.metrics.RecordEmitted(r.id)
	} else {
		e.metrics.RecordSuppressed(r.id)
	}
}

func (e *RuleEngine) runRules(userID uint, rules []rule) {
	for _, r := range rules {
		e.evaluate(r, userID)
	}
}

func (e *RuleEngine) loginRules() []rule {
	return []rule{
		{RuleMissingMonthlyGoal, e.checkMissingMonthlyGoal},
		{RuleMissingDailyConsumption, e.checkMissingDailyConsumption},
		{RuleGoalExceeded, e.checkGoalExceeded},
	}
}

func (e *RuleEngine) weeklyRules() []rule {
	return []rule{
		{RuleNearGoalLimit, e.checkNearGoalLimit},
		{RulePositiveProgress, e.checkPositiveProgress},
	}
}

func (e *RuleEngine) allRules() []rule {
	return []rule{
		{RuleMissingDailyConsumption, e.checkMissingDailyConsumption},
		{RuleMissingMonthlyGoal, e.checkMissingMonthlyGoal},
		{RuleNearGoalLimit, e.checkNearGoalLimit},
		{RuleGoalExceeded, e.checkGoalExceeded},
		{RulePositiveProgress, e.checkPositiveProgress},
		{RuleMonthEndSummary, e.checkMonthEndSummary},
	}
}

// RunLoginChecks evaluates the critical rules when a user session starts
func (e *RuleEngine) RunLoginChecks(userID uint) error {
	if err := e.requireUser(userID); err != nil {
		return err
	}
	e.runRules(userID, e.loginRules())
	return nil
}

// RunAllChecksForUser evaluates every rule for one user
func (e *RuleEngine) RunAllChecksForUser(userID uint) error {
	if err := e.requireUser(userID); err != nil {
		return err
	}
	e.runRules(userID, e.allRules())
	return nil
}

// RunDailyChecksForAllUsers runs the evening consumption reminder sweep
func (e *RuleEngine) RunDailyChecksForAllUsers() error {
	return e.sweep("daily", []rule{
		{RuleMissingDailyConsumption, e.checkMissingDailyConsumption},
	})
}

// RunWeeklyChecksForAllUsers runs the progress sweep
func (e *RuleEngine) RunWeeklyChecksForAllUsers() error {
	return e.sweep("weekly", e.weeklyRules())
}

// RunMonthStartChecksForAllUsers reminds users without a goal for the new month
func (e *RuleEngine) RunMonthStartChecksForAllUsers() error {
	return e.sweep("month-start", []rule{
		{RuleMissingMonthlyGoal, e.checkMissingMonthlyGoal},
	})
}

// RunMonthEndChecksForAllUsers sends the month-end summaries
func (e *RuleEngine) RunMonthEndChecksForAllUsers() error {
	return e.sweep("month-end", []rule{
		{RuleMonthEndSummary, e.checkMonthEndSummary},
	})
}

// RunAllChecksForAllUsers evaluates every rule for every active user
func (e *RuleEngine) RunAllChecksForAllUsers() error {
	return e.sweep("full", e.allRules())
}

// sweep runs a rule batch across all active users, sequentially. Users are
// isolated from each other by the per-rule error handling in evaluate.
func (e *RuleEngine) sweep(name string, rules []rule) error {
	users, err := e.userRepo.FindActive()
	if err != nil {
		return errors.NewDatabaseError("failed to list active users", err)
	}

	slog.Info("Running notification checks", "sweep", name, "users", len(users))
	for _, user := range users {
		e.runRules(user.ID, rules)
	}
	slog.Info("Notification checks completed", "sweep", name)
	return nil
}

// checkMissingDailyConsumption reminds a user who has not recorded anything
// today. Only fires from the reminder hour onward.
func (e *RuleEngine) checkMissingDailyConsumption(userID uint) (*ruleMessage, error) {
	now := e.clock.Now()
	if now.Hour() < reminderHour {
		return nil, nil
	}

	records, err := e.consumptionRepo.FindActiveByUserAndDate(userID, e.clock.Today())
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return nil, nil
	}

	return &ruleMessage{
		name: titleMissingDaily,
		description: "Don't forget to record today's energy usage! " +
			"Keeping the log up to date is what makes your savings goals work.",
	}, nil
}

// checkMissingMonthlyGoal reminds a user without an active goal for the
// current period
func (e *RuleEngine) checkMissingMonthlyGoal(userID uint) (*ruleMessage, error) {
	month, year := e.clock.CurrentPeriod()

	goal, err := e.goalRepo.FindActiveByPeriod(userID, month, year)
	if err != nil {
		return nil, err
	}
	if goal != nil {
		return nil, nil
	}

	return &ruleMessage{
		name: titleMissingGoal,
		description: fmt.Sprintf(
			"Set your energy consumption goal for %s %d! A clear target helps you control usage and lower your bill.",
			monthName(month), year),
	}, nil
}

// checkNearGoalLimit warns when this month's consumption has reached 80% of
// the goal but not the goal itself. At or past 100% the exceeded rule takes
// over; the two never fire together.
func (e *RuleEngine) checkNearGoalLimit(userID uint) (*ruleMessage, error) {
	month, year := e.clock.CurrentPeriod()

	goal, err := e.goalRepo.FindActiveByPeriod(userID, month, year)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, nil
	}

	total, err := e.monthConsumption(userID, month, year)
	if err != nil {
		return nil, err
	}

	if total < goal.GoalKWh*0.8 || total >= goal.GoalKWh {
		return nil, nil
	}

	remaining := goal.GoalKWh - total
	percentUsed := int(math.Round(total / goal.GoalKWh * 100))

	return &ruleMessage{
		name: titleNearLimit,
		description: fmt.Sprintf(
			"You have used %d%% of your monthly goal. %.2f kWh remain — watch your consumption to stay on target!",
			percentUsed, remaining),
	}, nil
}

// checkGoalExceeded fires when this month's consumption is strictly above
// the goal
func (e *RuleEngine) checkGoalExceeded(userID uint) (*ruleMessage, error) {
	month, year := e.clock.CurrentPeriod()

	goal, err := e.goalRepo.FindActiveByPeriod(userID, month, year)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, nil
	}

	total, err := e.monthConsumption(userID, month, year)
	if err != nil {
		return nil, err
	}
	if total <= goal.GoalKWh {
		return nil, nil
	}

	excess := total - goal.GoalKWh
	percentOver := int(math.Round(excess / goal.GoalKWh * 100))

	return &ruleMessage{
		name: titleGoalExceeded,
		description: fmt.Sprintf(
			"You have exceeded your monthly goal by %.2f kWh (%d%% over). Consider adjusting your habits for the rest of the month.",
			excess, percentOver),
	}, nil
}

// checkPositiveProgress congratulates a user whose recorded savings make up
// a meaningful share of their total energy budget
func (e *RuleEngine) checkPositiveProgress(userID uint) (*ruleMessage, error) {
	month, year := e.clock.CurrentPeriod()

	saving, err := e.savingRepo.FindActiveByPeriod(userID, month, year)
	if err != nil {
		return nil, err
	}
	if saving == nil || saving.SavingsKWh <= 0 {
		return nil, nil
	}

	total, err := e.monthConsumption(userID, month, year)
	if err != nil {
		return nil, err
	}

	percent := int(math.Round(saving.SavingsKWh / (saving.SavingsKWh + total) * 100))
	if percent < progressThresholdPercent {
		return nil, nil
	}

	return &ruleMessage{
		name: titlePositiveProgress,
		description: fmt.Sprintf(
			"Congratulations! You are saving %.2f kWh this month (%d%% efficiency). Keep it up to maximize your savings!",
			saving.SavingsKWh, percent),
	}, nil
}

// checkMonthEndSummary closes the month with a recap. Only fires on the last
// calendar day, and only when a saving record exists; the message branches on
// the sign of the balance.
func (e *RuleEngine) checkMonthEndSummary(userID uint) (*ruleMessage, error) {
	if !clock.IsLastDayOfMonth(e.clock.Now()) {
		return nil, nil
	}

	month, year := e.clock.CurrentPeriod()

	saving, err := e.savingRepo.FindActiveByPeriod(userID, month, year)
	if err != nil {
		return nil, err
	}
	if saving == nil {
		return nil, nil
	}

	var description string
	if saving.SavingsKWh > 0 {
		description = fmt.Sprintf("Summary for %s %d: you saved %.2f kWh and S/ %.2f!",
			monthName(month), year, saving.SavingsKWh, saving.SavingsSol)
	} else {
		description = fmt.Sprintf(
			"Summary for %s %d: you consumed %.2f kWh over your goal. Adjust your strategy for next month!",
			monthName(month), year, math.Abs(saving.SavingsKWh))
	}

	return &ruleMessage{name: titleMonthEndSummary, description: description}, nil
}

// monthConsumption sums the user's active daily consumption for one period
func (e *RuleEngine) monthConsumption(userID uint, month, year int) (float64, error) {
	first, last := clock.MonthRange(month, year, e.clock.Today().Location())
	dailies, err := e.consumptionRepo.FindActiveInRange(userID, first, last)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, d := range dailies {
		total += d.EstimatedConsumption
	}
	return total, nil
}

func (e *RuleEngine) requireUser(userID uint) error {
	user, err := e.userRepo.FindByID(userID)
	if err != nil {
		return errors.NewDatabaseError("failed to look up user", err)
	}
	if user == nil {
		return errors.NewNotFoundError(fmt.Sprintf("user with ID %d not found", userID))
	}
	return nil
}
