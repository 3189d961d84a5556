// Package seed loads the bundled sample dataset into empty repositories so a
// fresh deployment can answer recommendation requests immediately.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// EventStore is the slice of the event repository seeding needs.
type EventStore interface {
	Count(ctx context.Context) (int, error)
	Add(ctx context.Context, e *domain.HistoricalEvent) (int, error)
}

// MediaStore adds media catalog entries.
type MediaStore interface {
	Add(ctx context.Context, m *domain.MediaEntry) error
}

// KnowledgeStore adds knowledge entries.
type KnowledgeStore interface {
	Add(ctx context.Context, k *domain.KnowledgeEntry) (int, error)
}

// Run loads the sample dataset unless historical events already exist.
func Run(ctx context.Context, events EventStore, media MediaStore, knowledge KnowledgeStore) error {
	n, err := events.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed precheck: %w", err)
	}
	if n > 0 {
		log.Printf("[seed] %d historical events already present, skipping", n)
		return nil
	}

	for i := range sampleEvents {
		if _, err := events.Add(ctx, &sampleEvents[i]); err != nil {
			return fmt.Errorf("seed event %q: %w", sampleEvents[i].Name, err)
		}
	}
	for i := range sampleMedia {
		if err := media.Add(ctx, &sampleMedia[i]); err != nil {
			return fmt.Errorf("seed media %q: %w", sampleMedia[i].Name, err)
		}
	}
	for i := range sampleKnowledge {
		if _, err := knowledge.Add(ctx, &sampleKnowledge[i]); err != nil {
			return fmt.Errorf("seed knowledge %q: %w", sampleKnowledge[i].Title, err)
		}
	}

	log.Printf("[seed] loaded %d events, %d media, %d knowledge entries",
		len(sampleEvents), len(sampleMedia), len(sampleKnowledge))
	return nil
}

var sampleEvents = []domain.HistoricalEvent{
	{
		Name:            "PR Times一般申し込み開始",
		Category:        domain.CategorySeminar,
		Theme:           "無料媒体・経路",
		TargetAttendees: 100,
		ActualAttendees: 59,
		Budget:          0,
		ActualCost:      0,
		EventDate:       time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		CampaignsUsed:   []string{"organic_search", "direct_outreach"},
		Metrics:         domain.PerformanceMetrics{CTR: 0.0, CVR: 0.59, CPA: 0},
	},
	{
		Name:            "転職サービス会員向け施策",
		Category:        domain.CategoryWebinar,
		Theme:           "転職・キャリア",
		TargetAttendees: 50,
		ActualAttendees: 13,
		Budget:          100000,
		ActualCost:      70953,
		EventDate:       time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		CampaignsUsed:   []string{"email_marketing", "paid_advertising"},
		Metrics:         domain.PerformanceMetrics{CTR: 0.47, CVR: 3.9, CPA: 5458},
	},
	{
		Name:            "Meta明及川さん求人",
		Category:        domain.CategorySeminar,
		Theme:           "技術・エンジニア",
		TargetAttendees: 30,
		ActualAttendees: 26,
		Budget:          200000,
		ActualCost:      147200,
		EventDate:       time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		CampaignsUsed:   []string{"paid_advertising", "social_media"},
		Metrics:         domain.PerformanceMetrics{CTR: 0.95, CVR: 1.9, CPA: 5662},
	},
}

var sampleMedia = []domain.MediaEntry{
	{
		Name: "Meta",
		Type: "ディスプレイ広告",
		Audience: domain.TargetAudience{
			Industries: []string{"IT", "スタートアップ"},
			JobTitles:  []string{"エンジニア", "デザイナー"},
		},
		AverageCTR:     5.0,
		AverageCVR:     250.0,
		AverageCPA:     8000,
		ReachPotential: 5000,
		CostRange:      domain.CostRange{Min: 500000, Max: 2000000},
		ContentTypes:   []string{"動画", "インフォグラフィック"},
	},
	{
		Name: "TechPlay",
		Type: "組み合わせ",
		Audience: domain.TargetAudience{
			Industries: []string{"IT", "テクノロジー"},
			JobTitles:  []string{"エンジニア", "プロダクトマネージャー"},
		},
		AverageCTR:     4.0,
		AverageCVR:     200.0,
		AverageCPA:     3500,
		ReachPotential: 5000,
		CostRange:      domain.CostRange{Min: 300000, Max: 700000},
		ContentTypes:   []string{"技術記事", "イベント告知"},
	},
	{
		Name: "ITmedia",
		Type: "組み合わせ",
		Audience: domain.TargetAudience{
			Industries: []string{"IT", "製造業"},
			JobTitles:  []string{"IT管理者", "システム管理者"},
		},
		AverageCTR:     3.0,
		AverageCVR:     27.0,
		AverageCPA:     33937,
		ReachPotential: 884,
		CostRange:      domain.CostRange{Min: 500000, Max: 900000},
		ContentTypes:   []string{"技術解説", "事例紹介"},
	},
}

var sampleKnowledge = []domain.KnowledgeEntry{
	{Category: "campaign", Title: "FCメルマガ効果", Content: "FCメルマガは開封率が高く、エンジニア向けイベントで特に効果的。既存リストの質が重要。", ImpactScore: 1.2, Confidence: 0.8, Source: "sample_data"},
	{Category: "campaign", Title: "Meta広告最適化", Content: "Meta広告は予算を多く投入するほどリーチが拡大し、CPAが改善される。ターゲティング精度が鍵。", ImpactScore: 1.1, Confidence: 0.8, Source: "sample_data"},
	{Category: "audience", Title: "エンジニア特性", Content: "エンジニアはTechPlayやConnpassなどの専門プラットフォームを好む。技術的な内容への関心が高い。", ImpactScore: 1.3, Confidence: 0.8, Source: "sample_data"},
	{Category: "budget", Title: "予算配分", Content: "無料施策と有料施策の組み合わせで最大効果を発揮。無料施策でベースを作り、有料で拡大。", ImpactScore: 1.0, Confidence: 0.8, Source: "sample_data"},
	{Category: "timing", Title: "告知タイミング", Content: "開催2-3週間前の告知が最も効果的。早すぎると忘れられ、遅すぎると予定が埋まる。", ImpactScore: 1.1, Confidence: 0.8, Source: "sample_data"},
	{Category: "media", Title: "SNS活用", Content: "X(Twitter)での拡散は技術系イベントで高い効果。影響力のあるエンジニアのリツイートが重要。", ImpactScore: 1.2, Confidence: 0.8, Source: "sample_data"},
	{Category: "campaign", Title: "LinkedIn広告", Content: "LinkedIn広告はBtoBイベントで効果的。職種・業界ターゲティングが精密。", ImpactScore: 1.1, Confidence: 0.8, Source: "sample_data"},
	{Category: "audience", Title: "マーケティング職特性", Content: "マーケティング職はLinkedInを活用する傾向が高い。新しい手法への関心が強い。", ImpactScore: 1.2, Confidence: 0.8, Source: "sample_data"},
	{Category: "campaign", Title: "TechPlay効果", Content: "TechPlayは技術者向けイベントで高いコンバージョン率。有料だが費用対効果が良い。", ImpactScore: 1.3, Confidence: 0.8, Source: "sample_data"},
	{Category: "timing", Title: "平日開催", Content: "平日開催のイベントは企業からの参加が多い。土日は個人参加が中心。", ImpactScore: 1.0, Confidence: 0.8, Source: "sample_data"},
	{Category: "budget", Title: "小予算戦略", Content: "予算50万円以下の場合は無料施策中心。FCメルマガ+SNS+Connpassの組み合わせが効果的。", ImpactScore: 1.1, Confidence: 0.8, Source: "sample_data"},
	{Category: "campaign", Title: "Google広告", Content: "Google広告は検索意図が明確なユーザーにリーチ。イベント名やテーマでの検索に有効。", ImpactScore: 1.0, Confidence: 0.8, Source: "sample_data"},
}
