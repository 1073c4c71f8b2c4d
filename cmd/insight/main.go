package main

import (
	"context"
	"flag"
	"log"
	"sync"
	"time"

	"github.com/Lry0305/insurtech-insight/internal/analytics"
	"github.com/Lry0305/insurtech-insight/internal/config"
	"github.com/Lry0305/insurtech-insight/internal/corpus"
	"github.com/Lry0305/insurtech-insight/internal/crawler"
	"github.com/Lry0305/insurtech-insight/internal/export"
	"github.com/Lry0305/insurtech-insight/internal/llm"
	"github.com/Lry0305/insurtech-insight/internal/logger"
	"github.com/Lry0305/insurtech-insight/internal/report"
	"github.com/Lry0305/insurtech-insight/internal/search/factory"
	"github.com/Lry0305/insurtech-insight/internal/storage"
)

var flagconf string

func init() {
	flag.StringVar(&flagconf, "conf", "config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if len(cfg.Crawler.Keywords) == 0 {
		log.Fatal("配置错误: 未设置采集关键词 (crawler.keywords)")
	}

	// 2. 初始化日志
	if err = logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动保险科技观点分析...")

	ctx := context.Background()

	// 3. 初始化搜索与 LLM
	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		logger.Log.Fatalf("搜索客户端初始化失败: %v", err)
	}
	analyzer, err := llm.New(ctx, cfg.LLM, cfg.Concurrency)
	if err != nil {
		logger.Log.Fatalf("LLM 初始化失败: %v", err)
	}

	// 4. 采集新闻
	records := crawler.New(searcher, cfg.Crawler.MaxArticlesPerKeyword).
		Crawl(ctx, cfg.Crawler.Keywords)
	logger.Log.Infof("共采集到 %d 篇文章", len(records))

	// 5. 逐篇调用大模型提取洞察，失败的文章留空输出交给解析器降级
	var wg sync.WaitGroup
	for i := range records {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.Log.Infof("正在分析文章：%s", records[i].Title)
			output, err := analyzer.ExtractInsight(ctx, records[i].Title, records[i].Body)
			if err != nil {
				logger.Log.Errorf("分析失败 [%s]: %v", records[i].Title, err)
				return
			}
			records[i].RawOutput = output
		}(i)
	}
	wg.Wait()

	// 6. 构建分析表与聚合视图
	c := corpus.Build(records, corpus.DateSource(cfg.Analysis.DateSource))

	sentiments := analytics.SentimentDistribution(c.Table)
	keywords := analytics.TopKeywords(c.Keywords, cfg.Analysis.TopNKeywords)
	entities := analytics.BuildEntityMatrix(c.EntitySentiments, cfg.Analysis.TopEntities)
	clusters := analytics.ClusterOpinions(c.Opinions(), cfg.Analysis.ClusterCount, cfg.Analysis.TFIDFMaxFeatures)
	c.AttachClusters(clusters.Assignments)
	timeline := analytics.Timeline(c.Table)

	// 7. 导出结果
	if err := export.WriteTableJSON(cfg.Output.JSONFile, c.Table); err != nil {
		logger.Log.Errorf("导出 JSON 失败: %v", err)
	}
	if err := export.WriteTableCSV(cfg.Output.CSVFile, c.Table); err != nil {
		logger.Log.Errorf("导出 CSV 失败: %v", err)
	}
	if err := report.Render(cfg.Output.ReportFile, report.Data{
		Date:       time.Now().Format("2006-01-02"),
		Count:      len(c.Table),
		Sentiments: sentiments,
		Keywords:   keywords,
		Entities:   entities,
		Clusters:   clusters,
		Timeline:   timeline,
		Table:      c.Table,
	}); err != nil {
		logger.Log.Errorf("生成报告失败: %v", err)
	}

	// 8. 可选：写入数据库
	if cfg.DB.Host != "" {
		store, err := storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Errorf("数据库初始化失败: %v", err)
		} else {
			defer store.Close()
			runID, err := store.CreateRun(len(c.Table))
			if err != nil {
				logger.Log.Errorf("无法创建批次记录: %v", err)
			} else {
				if err := store.SaveInsights(runID, c.Table); err != nil {
					logger.Log.Errorf("保存分析表失败: %v", err)
				}
				if err := store.SaveKeywordCounts(runID, keywords); err != nil {
					logger.Log.Errorf("保存关键词排行失败: %v", err)
				}
				if err := store.SaveTimeline(runID, timeline); err != nil {
					logger.Log.Errorf("保存时间趋势失败: %v", err)
				}
			}
		}
	}

	logger.Log.Infof("✅ 分析完毕: %s", cfg.Output.ReportFile)
}
