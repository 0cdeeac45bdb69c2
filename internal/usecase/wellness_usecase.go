package usecase

import (
	"context"
	"errors"
	"time"

	"placewell-backend/internal/domain"
	"placewell-backend/pkg/apperror"
	"placewell-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// sentimentClient is the slice of ai.SentimentClient the usecase needs.
type sentimentClient interface {
	IsConfigured() bool
	Analyze(ctx context.Context, text string) (string, error)
}

type wellnessUsecase struct {
	moodRepo    domain.MoodLogRepository
	alertRepo   domain.WellnessAlertRepository
	studentRepo domain.StudentProfileRepository
	sentiment   sentimentClient
	validate    *validator.Validate
}

func NewWellnessUsecase(
	moodRepo domain.MoodLogRepository,
	alertRepo domain.WellnessAlertRepository,
	studentRepo domain.StudentProfileRepository,
	sentiment sentimentClient,
	validate *validator.Validate,
) domain.WellnessUsecase {
	return &wellnessUsecase{
		moodRepo:    moodRepo,
		alertRepo:   alertRepo,
		studentRepo: studentRepo,
		sentiment:   sentiment,
		validate:    validate,
	}
}

// LogMood appends an immutable mood log. Sentiment tagging of the notes and
// alert evaluation are both advisory: their failures never fail the log.
func (uc *wellnessUsecase) LogMood(ctx context.Context, profileID string, log *domain.MoodLog) (*domain.MoodLog, error) {
	student, err := uc.studentRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, apperror.NotFound("Student profile not found")
	}
	log.StudentID = student.ID

	if err := uc.validate.Struct(log); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	if log.Notes != nil && *log.Notes != "" && uc.sentiment != nil && uc.sentiment.IsConfigured() {
		if label, err := uc.sentiment.Analyze(ctx, *log.Notes); err == nil {
			log.Sentiment = &label
		} else {
			logger.Log.Warn("Sentiment analysis failed, storing log without tag", "error", err)
		}
	}

	if err := uc.moodRepo.Create(ctx, log); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.evaluateAlerts(ctx, student.ID)

	return log, nil
}

func (uc *wellnessUsecase) ListMoodLogs(ctx context.Context, profileID string, limit int) ([]domain.MoodLog, error) {
	student, err := uc.studentRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, apperror.NotFound("Student profile not found")
	}
	if limit < 1 || limit > 90 {
		limit = 30
	}
	return uc.moodRepo.GetRecentByStudent(ctx, student.ID, limit)
}

func (uc *wellnessUsecase) GetResilienceScore(ctx context.Context, profileID string) (int, error) {
	student, err := uc.studentRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		return 0, apperror.NotFound("Student profile not found")
	}
	logs, err := uc.moodRepo.GetRecentByStudent(ctx, student.ID, resilienceWindow)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return CalculateResilienceScore(logs), nil
}

// GetRecommendations derives recommendations from the latest mood log. With
// no history the neutral sample (5,5,5) applies.
func (uc *wellnessUsecase) GetRecommendations(ctx context.Context, profileID string) ([]string, error) {
	student, err := uc.studentRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, apperror.NotFound("Student profile not found")
	}
	logs, err := uc.moodRepo.GetRecentByStudent(ctx, student.ID, 1)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	mood, stress, energy := 5, 5, 5
	if len(logs) > 0 {
		latest := logs[len(logs)-1]
		mood, stress, energy = latest.MoodScore, latest.StressLevel, latest.EnergyLevel
	}
	return GenerateWellnessRecommendations(mood, stress, energy), nil
}

// ListAlerts also evaluates the no-activity condition on the read path, since
// there is no background scheduler to notice silence.
func (uc *wellnessUsecase) ListAlerts(ctx context.Context, profileID string, includeResolved bool) ([]domain.WellnessAlert, error) {
	student, err := uc.studentRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, apperror.NotFound("Student profile not found")
	}

	uc.evaluateNoActivity(ctx, student.ID)

	return uc.alertRepo.GetByStudentID(ctx, student.ID, includeResolved)
}

func (uc *wellnessUsecase) ResolveAlert(ctx context.Context, resolverID string, alertID string, notes string) error {
	alert, err := uc.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Alert not found")
		}
		return apperror.Internal(err)
	}
	if alert.Resolved {
		return apperror.Conflict("Alert is already resolved")
	}

	if err := uc.alertRepo.Resolve(ctx, alertID, resolverID, notes); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// evaluateAlerts inspects the recent window after a new log and raises alerts
// for concerning patterns. An unresolved alert of the same type suppresses a
// duplicate.
func (uc *wellnessUsecase) evaluateAlerts(ctx context.Context, studentID string) {
	logs, err := uc.moodRepo.GetRecentByStudent(ctx, studentID, resilienceWindow)
	if err != nil || len(logs) == 0 {
		return
	}

	recent := logs
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	var moodSum, stressSum float64
	for _, log := range recent {
		moodSum += defaultScore(log.MoodScore)
		stressSum += defaultScore(log.StressLevel)
	}
	avgMood := moodSum / float64(len(recent))
	avgStress := stressSum / float64(len(recent))

	if avgMood < 4 {
		severity := domain.AlertSeverityMedium
		if avgMood < 3 {
			severity = domain.AlertSeverityHigh
		}
		uc.raiseAlert(ctx, studentID, domain.AlertTypeLowMood, severity,
			"Mood has been low over the last few check-ins.")
	}
	if avgStress > 7 {
		severity := domain.AlertSeverityHigh
		if avgStress > 8.5 {
			severity = domain.AlertSeverityCritical
		}
		uc.raiseAlert(ctx, studentID, domain.AlertTypeHighStress, severity,
			"Stress has been high over the last few check-ins.")
	}

	// Declining trend: compare the score of the two halves of the window
	if len(logs) >= 4 {
		mid := len(logs) / 2
		older := CalculateResilienceScore(logs[:mid])
		newer := CalculateResilienceScore(logs[mid:])
		if older-newer >= 15 {
			uc.raiseAlert(ctx, studentID, domain.AlertTypeDecliningTrend, domain.AlertSeverityMedium,
				"Resilience score has dropped noticeably over recent check-ins.")
		}
	}
}

// evaluateNoActivity raises a low severity alert when no mood log has been
// recorded for a week.
func (uc *wellnessUsecase) evaluateNoActivity(ctx context.Context, studentID string) {
	logs, err := uc.moodRepo.GetRecentByStudent(ctx, studentID, 1)
	if err != nil {
		return
	}
	if len(logs) > 0 && time.Since(logs[len(logs)-1].CreatedAt) < 7*24*time.Hour {
		return
	}
	uc.raiseAlert(ctx, studentID, domain.AlertTypeNoActivity, domain.AlertSeverityLow,
		"No mood check-in recorded for over a week.")
}

func (uc *wellnessUsecase) raiseAlert(ctx context.Context, studentID, alertType, severity, message string) {
	exists, err := uc.alertRepo.HasUnresolved(ctx, studentID, alertType)
	if err != nil || exists {
		return
	}
	alert := &domain.WellnessAlert{
		StudentID: studentID,
		AlertType: alertType,
		Severity:  severity,
		Message:   message,
	}
	if err := uc.alertRepo.Create(ctx, alert); err != nil {
		logger.Log.Warn("Failed to create wellness alert", "student_id", studentID, "type", alertType, "error", err)
	}
}
