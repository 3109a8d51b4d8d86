package services

import (
	appContext "github.com/alphabatem/common/context"

	"github.com/codelab-edu/codelab_api/dto"
)

// StatsService tracks the editor's lines-written counter and folds in the
// challenge badge count for the dashboard.
type StatsService struct {
	appContext.DefaultService

	sqlSvc *SqlService
}

const STATS_SVC = "stats_svc"

func (svc StatsService) Id() string {
	return STATS_SVC
}

func (svc *StatsService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *StatsService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	return nil
}

func (svc *StatsService) GetStats(userID string) (*dto.UserStatsResponse, error) {
	linesWritten := 0
	stats, err := svc.sqlSvc.GetUserStats(userID)
	if err == nil {
		linesWritten = stats.TotalLinesWritten
	} else if !IsNotFound(err) {
		return nil, err
	}

	challenges, err := svc.sqlSvc.CountChallengeAchievements(userID)
	if err != nil {
		return nil, err
	}

	return &dto.UserStatsResponse{
		CodeLinesWritten:    linesWritten,
		ChallengesCompleted: int(challenges),
	}, nil
}

func (svc *StatsService) AddLines(userID string, req dto.AddLinesRequest) (*dto.AddLinesResponse, error) {
	if req.LinesToAdd <= 0 {
		current, err := svc.GetStats(userID)
		if err != nil {
			return nil, err
		}
		return &dto.AddLinesResponse{CodeLinesWritten: current.CodeLinesWritten}, nil
	}

	stats, err := svc.sqlSvc.AddLinesWritten(userID, req.LinesToAdd)
	if err != nil {
		return nil, err
	}

	return &dto.AddLinesResponse{CodeLinesWritten: stats.TotalLinesWritten}, nil
}
