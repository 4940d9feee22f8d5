package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/models"
)

const (
	publicAnalyticsCacheKey = "analytics:public"
	publicAnalyticsCacheTTL = 5 * time.Minute
)

// comparisonDimensions are the outcome dimensions reported when peptides
// are compared side by side. A missing dimension averages to zero.
var comparisonDimensions = []string{"energy", "sleep", "mood", "performance", "recovery", "sideEffects"}

// AnalyticsService computes aggregate views over the experience corpus.
// The cache client may be nil, in which case every read hits the database.
type AnalyticsService struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewAnalyticsService(db *gorm.DB, cache *redis.Client) *AnalyticsService {
	return &AnalyticsService{db: db, cache: cache}
}

// UsageStats is the high level platform summary.
type UsageStats struct {
	TotalExperiences int64   `json:"totalExperiences"`
	TotalPeptides    int64   `json:"totalPeptides"`
	AverageRating    float64 `json:"averageRating"`
	TopPeptidesCount int     `json:"topPeptidesCount"`
	ActiveUsersCount int     `json:"activeUsersCount"`
}

// PeptideRanking is one row of a ranked peptide listing.
type PeptideRanking struct {
	Name        string  `json:"name"`
	Experiences int     `json:"experiences"`
	Rating      float64 `json:"rating"`
}

// EffectivenessEntry is the per-dimension outcome profile of one peptide.
type EffectivenessEntry struct {
	Peptide       string             `json:"peptide"`
	Experiences   int                `json:"experiences"`
	Effectiveness map[string]float64 `json:"effectiveness"`
}

// MonthlyCount is an experience tally for one calendar month.
type MonthlyCount struct {
	Month       string `json:"month"`
	Experiences int    `json:"experiences"`
}

// NameCount is a generic name/value frequency pair.
type NameCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Dashboard is the full analytics view served to moderators and, cached,
// to the public endpoint.
type Dashboard struct {
	TotalExperiences    int64                `json:"totalExperiences"`
	TotalPeptides       int64                `json:"totalPeptides"`
	AverageRating       float64              `json:"averageRating"`
	TopPeptides         []PeptideRanking     `json:"topPeptides"`
	EffectivenessData   []EffectivenessEntry `json:"effectivenessData"`
	UsageTrends         []MonthlyCount       `json:"usageTrends"`
	OutcomeDistribution map[string]float64   `json:"outcomeDistribution"`
	PeptideFrequency    []NameCount          `json:"peptideFrequency"`
}

// Usage returns the platform summary: totals, the overall average rating
// and the count of users who submitted in the trailing 30 days.
func (s *AnalyticsService) Usage(ctx context.Context) (*UsageStats, error) {
	out := &UsageStats{}

	if err := s.db.WithContext(ctx).Model(&models.Experience{}).
		Where("state = ?", models.ExperienceActive).
		Count(&out.TotalExperiences).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Peptide{}).Count(&out.TotalPeptides).Error; err != nil {
		return nil, err
	}

	experiences, err := s.activeExperiences(ctx)
	if err != nil {
		return nil, err
	}

	var ratingSum float64
	var rated int
	counts := map[string]int{}
	activeUsers := map[string]struct{}{}
	monthAgo := time.Now().AddDate(0, 0, -30)

	for i := range experiences {
		exp := &experiences[i]
		if len(exp.Outcomes) > 0 {
			ratingSum += exp.AverageRating()
			rated++
		}
		counts[exp.PeptideName]++
		if exp.UserID != nil && exp.CreatedAt.After(monthAgo) {
			activeUsers[exp.UserID.String()] = struct{}{}
		}
	}
	if rated > 0 {
		out.AverageRating = round1(ratingSum / float64(rated))
	}
	out.TopPeptidesCount = len(topByCount(counts, 5))
	out.ActiveUsersCount = len(activeUsers)
	return out, nil
}

// GetDashboard computes the full analytics view from live data.
func (s *AnalyticsService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	out := &Dashboard{
		TopPeptides:         []PeptideRanking{},
		EffectivenessData:   []EffectivenessEntry{},
		UsageTrends:         []MonthlyCount{},
		OutcomeDistribution: map[string]float64{},
		PeptideFrequency:    []NameCount{},
	}

	if err := s.db.WithContext(ctx).Model(&models.Peptide{}).Count(&out.TotalPeptides).Error; err != nil {
		return nil, err
	}

	experiences, err := s.activeExperiences(ctx)
	if err != nil {
		return nil, err
	}
	out.TotalExperiences = int64(len(experiences))

	type peptideAgg struct {
		count     int
		ratingSum float64
		dimSums   map[string]float64
		dimCounts map[string]int
	}
	byPeptide := map[string]*peptideAgg{}
	byMonth := map[string]int{}
	dimSums := map[string]float64{}
	dimCounts := map[string]int{}
	var ratingSum float64
	var rated int

	for i := range experiences {
		exp := &experiences[i]
		agg, ok := byPeptide[exp.PeptideName]
		if !ok {
			agg = &peptideAgg{dimSums: map[string]float64{}, dimCounts: map[string]int{}}
			byPeptide[exp.PeptideName] = agg
		}
		agg.count++
		agg.ratingSum += exp.AverageRating()
		for dim, v := range exp.Outcomes {
			agg.dimSums[dim] += v
			agg.dimCounts[dim]++
			dimSums[dim] += v
			dimCounts[dim]++
		}
		if len(exp.Outcomes) > 0 {
			ratingSum += exp.AverageRating()
			rated++
		}
		byMonth[exp.CreatedAt.Format("2006-01")]++
	}

	if rated > 0 {
		out.AverageRating = round1(ratingSum / float64(rated))
	}
	for dim, sum := range dimSums {
		out.OutcomeDistribution[dim] = round1(sum / float64(dimCounts[dim]))
	}

	names := make([]string, 0, len(byPeptide))
	for name := range byPeptide {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if byPeptide[names[i]].count != byPeptide[names[j]].count {
			return byPeptide[names[i]].count > byPeptide[names[j]].count
		}
		return names[i] < names[j]
	})

	for i, name := range names {
		agg := byPeptide[name]
		if i < 10 {
			out.TopPeptides = append(out.TopPeptides, PeptideRanking{
				Name:        name,
				Experiences: agg.count,
				Rating:      round1(agg.ratingSum / float64(agg.count)),
			})
		}
		if i < 15 {
			entry := EffectivenessEntry{
				Peptide:       name,
				Experiences:   agg.count,
				Effectiveness: map[string]float64{},
			}
			for dim, sum := range agg.dimSums {
				entry.Effectiveness[dim] = round1(sum / float64(agg.dimCounts[dim]))
			}
			out.EffectivenessData = append(out.EffectivenessData, entry)
		}
		if i < 20 {
			out.PeptideFrequency = append(out.PeptideFrequency, NameCount{Name: name, Value: agg.count})
		}
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	if len(months) > 12 {
		months = months[:12]
	}
	for _, m := range months {
		out.UsageTrends = append(out.UsageTrends, MonthlyCount{Month: m, Experiences: byMonth[m]})
	}

	return out, nil
}

// PublicStats is the reduced summary served to anonymous visitors.
type PublicStats struct {
	TotalExperiences int64            `json:"totalExperiences"`
	TotalPeptides    int64            `json:"totalPeptides"`
	AverageRating    float64          `json:"averageRating"`
	ActiveUsers      int              `json:"activeUsers"`
	TopPeptides      []PeptideRanking `json:"topPeptides"`
}

// Public serves the anonymous summary through a short-lived cache so the
// open endpoint cannot hammer the database. A missing cache client means
// every read hits the database.
func (s *AnalyticsService) Public(ctx context.Context) (*PublicStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, publicAnalyticsCacheKey).Bytes(); err == nil {
			var stats PublicStats
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	usage, err := s.Usage(ctx)
	if err != nil {
		return nil, err
	}
	effectiveness, err := s.Effectiveness(ctx)
	if err != nil {
		return nil, err
	}

	stats := &PublicStats{
		TotalExperiences: usage.TotalExperiences,
		TotalPeptides:    usage.TotalPeptides,
		AverageRating:    usage.AverageRating,
		ActiveUsers:      usage.ActiveUsersCount,
		TopPeptides:      []PeptideRanking{},
	}
	for i, entry := range effectiveness {
		if i == 6 {
			break
		}
		var rating float64
		if len(entry.Effectiveness) > 0 {
			var sum float64
			for _, v := range entry.Effectiveness {
				sum += v
			}
			rating = round1(sum / float64(len(entry.Effectiveness)))
		}
		stats.TopPeptides = append(stats.TopPeptides, PeptideRanking{
			Name:        entry.Peptide,
			Experiences: entry.Experiences,
			Rating:      rating,
		})
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.cache.Set(ctx, publicAnalyticsCacheKey, payload, publicAnalyticsCacheTTL)
		}
	}
	return stats, nil
}

// Effectiveness returns the per-dimension outcome profile of every peptide
// with at least one active experience.
func (s *AnalyticsService) Effectiveness(ctx context.Context) ([]EffectivenessEntry, error) {
	experiences, err := s.activeExperiences(ctx)
	if err != nil {
		return nil, err
	}

	type agg struct {
		count     int
		dimSums   map[string]float64
		dimCounts map[string]int
	}
	byPeptide := map[string]*agg{}
	for i := range experiences {
		exp := &experiences[i]
		a, ok := byPeptide[exp.PeptideName]
		if !ok {
			a = &agg{dimSums: map[string]float64{}, dimCounts: map[string]int{}}
			byPeptide[exp.PeptideName] = a
		}
		a.count++
		for dim, v := range exp.Outcomes {
			a.dimSums[dim] += v
			a.dimCounts[dim]++
		}
	}

	out := make([]EffectivenessEntry, 0, len(byPeptide))
	for name, a := range byPeptide {
		entry := EffectivenessEntry{Peptide: name, Experiences: a.count, Effectiveness: map[string]float64{}}
		for dim, sum := range a.dimSums {
			entry.Effectiveness[dim] = round1(sum / float64(a.dimCounts[dim]))
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Experiences != out[j].Experiences {
			return out[i].Experiences > out[j].Experiences
		}
		return out[i].Peptide < out[j].Peptide
	})
	return out, nil
}

// PeptideTrend is one peptide's monthly submission history.
type PeptideTrend struct {
	Peptide string         `json:"peptide"`
	Data    []MonthlyCount `json:"data"`
}

// Trends returns per-peptide monthly submission counts, months ascending.
func (s *AnalyticsService) Trends(ctx context.Context) ([]PeptideTrend, error) {
	experiences, err := s.activeExperiences(ctx)
	if err != nil {
		return nil, err
	}

	byPeptide := map[string]map[string]int{}
	for i := range experiences {
		exp := &experiences[i]
		months, ok := byPeptide[exp.PeptideName]
		if !ok {
			months = map[string]int{}
			byPeptide[exp.PeptideName] = months
		}
		months[exp.CreatedAt.Format("2006-01")]++
	}

	out := make([]PeptideTrend, 0, len(byPeptide))
	for name, months := range byPeptide {
		keys := make([]string, 0, len(months))
		for m := range months {
			keys = append(keys, m)
		}
		sort.Strings(keys)
		trend := PeptideTrend{Peptide: name, Data: make([]MonthlyCount, 0, len(keys))}
		for _, m := range keys {
			trend.Data = append(trend.Data, MonthlyCount{Month: m, Experiences: months[m]})
		}
		out = append(out, trend)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Peptide < out[j].Peptide })
	return out, nil
}

// TrendPeriodPeptide is one peptide's standing within a trend period.
type TrendPeriodPeptide struct {
	PeptideID   string  `json:"peptideId"`
	Name        string  `json:"name"`
	Experiences int     `json:"experiences"`
	AvgRating   float64 `json:"avgRating"`
	GrowthRate  int     `json:"growthRate"`
}

// TrendPeriod is one bucket of the trend report.
type TrendPeriod struct {
	Period           string               `json:"period"`
	TotalExperiences int                  `json:"totalExperiences"`
	TopPeptides      []TrendPeriodPeptide `json:"topPeptides"`
	GrowthRate       int                  `json:"growthRate"`
}

// GrowthEntry summarizes a peptide's growth over the whole report window.
type GrowthEntry struct {
	Name             string `json:"name"`
	OverallGrowth    int    `json:"overallGrowth"`
	TotalExperiences int    `json:"totalExperiences"`
}

// TrendReport is the full submission trend analysis.
type TrendReport struct {
	Summary struct {
		Period                  string `json:"period"`
		TotalPeriods            int    `json:"totalPeriods"`
		TotalExperiences        int    `json:"totalExperiences"`
		AvgExperiencesPerPeriod int    `json:"avgExperiencesPerPeriod"`
	} `json:"summary"`
	Trends         []TrendPeriod `json:"trends"`
	FastestGrowing []GrowthEntry `json:"fastestGrowing"`
	Analysis       struct {
		PeriodWithMostActivity TrendPeriod `json:"periodWithMostActivity"`
	} `json:"analysis"`
}

// PeptideTrends buckets submissions by daily, weekly or monthly period and
// reports per-period top peptides, period-over-period growth and the
// fastest growing peptides across the window.
func (s *AnalyticsService) PeptideTrends(ctx context.Context, period string, limit int) (*TrendReport, error) {
	if limit <= 0 {
		limit = 12
	}
	bucket := func(t time.Time) string {
		switch period {
		case "daily":
			return t.Format("2006-01-02")
		case "weekly":
			year, week := t.ISOWeek()
			return fmt.Sprintf("%d-W%02d", year, week)
		default:
			return t.Format("2006-01")
		}
	}
	if period != "daily" && period != "weekly" {
		period = "monthly"
	}

	experiences, err := s.activeExperiences(ctx)
	if err != nil {
		return nil, err
	}

	type periodPeptide struct {
		peptideID string
		name      string
		count     int
		ratingSum float64
	}
	type periodAgg struct {
		total    int
		peptides map[string]*periodPeptide
	}
	periods := map[string]*periodAgg{}

	for i := range experiences {
		exp := &experiences[i]
		key := bucket(exp.CreatedAt)
		agg, ok := periods[key]
		if !ok {
			agg = &periodAgg{peptides: map[string]*periodPeptide{}}
			periods[key] = agg
		}
		agg.total++
		pid := exp.PeptideID.String()
		pp, ok := agg.peptides[pid]
		if !ok {
			pp = &periodPeptide{peptideID: pid, name: exp.PeptideName}
			agg.peptides[pid] = pp
		}
		pp.count++
		pp.ratingSum += exp.AverageRating()
	}

	keys := make([]string, 0, len(periods))
	for k := range periods {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > limit {
		keys = keys[len(keys)-limit:]
	}

	report := &TrendReport{Trends: []TrendPeriod{}, FastestGrowing: []GrowthEntry{}}
	report.Summary.Period = period

	for i, key := range keys {
		agg := periods[key]
		entry := TrendPeriod{
			Period:           key,
			TotalExperiences: agg.total,
			TopPeptides:      []TrendPeriodPeptide{},
		}

		var prev *periodAgg
		if i > 0 {
			prev = periods[keys[i-1]]
		}
		if prev != nil {
			entry.GrowthRate = growthRate(agg.total, prev.total)
		}

		pps := make([]*periodPeptide, 0, len(agg.peptides))
		for _, pp := range agg.peptides {
			pps = append(pps, pp)
		}
		sort.Slice(pps, func(a, b int) bool {
			if pps[a].count != pps[b].count {
				return pps[a].count > pps[b].count
			}
			return pps[a].name < pps[b].name
		})
		if len(pps) > 5 {
			pps = pps[:5]
		}
		for _, pp := range pps {
			top := TrendPeriodPeptide{
				PeptideID:   pp.peptideID,
				Name:        pp.name,
				Experiences: pp.count,
				AvgRating:   math.Round(pp.ratingSum/float64(pp.count)*100) / 100,
			}
			if prev != nil {
				prevCount := 0
				if prevPP, ok := prev.peptides[pp.peptideID]; ok {
					prevCount = prevPP.count
				}
				top.GrowthRate = growthRate(pp.count, prevCount)
			}
			entry.TopPeptides = append(entry.TopPeptides, top)
		}

		report.Trends = append(report.Trends, entry)
		report.Summary.TotalExperiences += agg.total
	}

	report.Summary.TotalPeriods = len(report.Trends)
	if len(report.Trends) > 0 {
		report.Summary.AvgExperiencesPerPeriod = int(math.Round(
			float64(report.Summary.TotalExperiences) / float64(len(report.Trends))))

		busiest := report.Trends[0]
		for _, t := range report.Trends[1:] {
			if t.TotalExperiences > busiest.TotalExperiences {
				busiest = t
			}
		}
		report.Analysis.PeriodWithMostActivity = busiest
	}

	pidSet := map[string]struct{}{}
	for _, key := range keys {
		for pid := range periods[key].peptides {
			pidSet[pid] = struct{}{}
		}
	}
	pids := make([]string, 0, len(pidSet))
	for pid := range pidSet {
		pids = append(pids, pid)
	}
	sort.Strings(pids)

	growth := map[string]*GrowthEntry{}
	for _, pid := range pids {
		var first, last, total int
		var name string
		seen := 0
		for _, key := range keys {
			pp, ok := periods[key].peptides[pid]
			if !ok {
				continue
			}
			if seen == 0 {
				first = pp.count
			}
			last = pp.count
			total += pp.count
			name = pp.name
			seen++
		}
		if seen >= 2 {
			growth[pid] = &GrowthEntry{
				Name:             name,
				OverallGrowth:    growthRate(last, first),
				TotalExperiences: total,
			}
		}
	}
	entries := make([]GrowthEntry, 0, len(growth))
	for _, g := range growth {
		entries = append(entries, *g)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].OverallGrowth != entries[j].OverallGrowth {
			return entries[i].OverallGrowth > entries[j].OverallGrowth
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > 5 {
		entries = entries[:5]
	}
	report.FastestGrowing = entries

	return report, nil
}

// ComparisonEntry is one peptide's side of a comparison.
type ComparisonEntry struct {
	PeptideID   string             `json:"peptideId"`
	PeptideName string             `json:"peptideName"`
	Experiences int                `json:"experiences"`
	Outcomes    map[string]float64 `json:"outcomes"`
}

// Comparison averages the six standard outcome dimensions for each of the
// given peptides. Peptides with no active experiences report zeros.
func (s *AnalyticsService) Comparison(ctx context.Context, peptideIDs []string) ([]ComparisonEntry, error) {
	if len(peptideIDs) == 0 {
		return []ComparisonEntry{}, nil
	}

	var peptides []models.Peptide
	if err := s.db.WithContext(ctx).Where("id IN ?", peptideIDs).Find(&peptides).Error; err != nil {
		return nil, err
	}
	if len(peptides) == 0 {
		return nil, ErrPeptideNotFound
	}

	out := make([]ComparisonEntry, 0, len(peptides))
	for _, p := range peptides {
		var experiences []models.Experience
		err := s.db.WithContext(ctx).
			Where("peptide_id = ? AND state = ?", p.ID, models.ExperienceActive).
			Find(&experiences).Error
		if err != nil {
			return nil, err
		}

		entry := ComparisonEntry{
			PeptideID:   p.ID.String(),
			PeptideName: p.Name,
			Experiences: len(experiences),
			Outcomes:    map[string]float64{},
		}
		for _, dim := range comparisonDimensions {
			var sum float64
			for i := range experiences {
				sum += experiences[i].Outcomes[dim]
			}
			if len(experiences) > 0 {
				entry.Outcomes[dim] = round1(sum / float64(len(experiences)))
			} else {
				entry.Outcomes[dim] = 0
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *AnalyticsService) activeExperiences(ctx context.Context) ([]models.Experience, error) {
	var experiences []models.Experience
	err := s.db.WithContext(ctx).
		Where("state = ?", models.ExperienceActive).
		Find(&experiences).Error
	return experiences, err
}

func growthRate(current, previous int) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func topByCount(counts map[string]int, n int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}
