package services

import (
	"context"
	"sort"

	"cup-live-service/database"
)

// StandingsRow 某支球队在其组别内的积分榜行（派生数据，不落库）
type StandingsRow struct {
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	TeamLogo       string `json:"teamLogo"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

// CategoryStandings 一个组别的排序后积分榜
type CategoryStandings struct {
	Category string          `json:"category"`
	Teams    []*StandingsRow `json:"teams"`
}

// StandingsService 积分榜聚合服务。每次请求对全部已完赛比赛
// 重新计算，无缓存、无增量物化，天然无陈旧数据问题。
type StandingsService struct {
	stores Stores
}

// NewStandingsService 创建 StandingsService
func NewStandingsService(stores Stores) *StandingsService {
	return &StandingsService{stores: stores}
}

// Compute 读取全部球队与已完赛比赛并计算积分榜
func (s *StandingsService) Compute(ctx context.Context) ([]CategoryStandings, error) {
	teams, err := s.stores.Teams().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := s.stores.Matches().List(ctx, MatchFilter{Status: database.StatusCompleted})
	if err != nil {
		return nil, err
	}

	return ComputeStandings(teams, completed), nil
}

// ComputeStandings 纯计算：按组别（性别 + 年龄组）聚合已完赛
// 比赛，积分规则胜 3 / 平 1 / 负 0，组内按积分、净胜球、
// 进球数降序排列。幂等、无副作用，可并发重复调用。
func ComputeStandings(teams []*database.Team, completed []*database.Match) []CategoryStandings {
	// 每支球队在其组别下初始化零值行
	byCategory := make(map[string]map[string]*StandingsRow)
	for _, team := range teams {
		key := team.CategoryKey()
		if byCategory[key] == nil {
			byCategory[key] = make(map[string]*StandingsRow)
		}
		byCategory[key][team.ID] = &StandingsRow{
			TeamID:   team.ID,
			TeamName: team.Name,
			TeamLogo: team.LogoURL,
		}
	}

	for _, match := range completed {
		rows := byCategory[match.CategoryKey()]
		if rows == nil {
			continue
		}

		rowA := rows[match.TeamA]
		rowB := rows[match.TeamB]
		// 任一球队不在该组别时跳过，避免跨组别污染
		if rowA == nil || rowB == nil {
			continue
		}

		rowA.Played++
		rowB.Played++
		rowA.GoalsFor += match.ScoreA
		rowB.GoalsFor += match.ScoreB
		rowA.GoalsAgainst += match.ScoreB
		rowB.GoalsAgainst += match.ScoreA

		switch {
		case match.ScoreA > match.ScoreB:
			rowA.Won++
			rowB.Lost++
			rowA.Points += 3
		case match.ScoreB > match.ScoreA:
			rowB.Won++
			rowA.Lost++
			rowB.Points += 3
		default:
			rowA.Drawn++
			rowB.Drawn++
			rowA.Points++
			rowB.Points++
		}
	}

	// 组别按名称排序，保证输出稳定
	categories := make([]string, 0, len(byCategory))
	for key := range byCategory {
		categories = append(categories, key)
	}
	sort.Strings(categories)

	result := make([]CategoryStandings, 0, len(categories))
	for _, key := range categories {
		rows := make([]*StandingsRow, 0, len(byCategory[key]))
		for _, row := range byCategory[key] {
			row.GoalDifference = row.GoalsFor - row.GoalsAgainst
			rows = append(rows, row)
		}

		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Points != rows[j].Points {
				return rows[i].Points > rows[j].Points
			}
			if rows[i].GoalDifference != rows[j].GoalDifference {
				return rows[i].GoalDifference > rows[j].GoalDifference
			}
			return rows[i].GoalsFor > rows[j].GoalsFor
		})

		result = append(result, CategoryStandings{Category: key, Teams: rows})
	}

	return result
}
