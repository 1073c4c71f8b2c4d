package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/Lry0305/insurtech-insight/internal/logger"
	"github.com/Lry0305/insurtech-insight/internal/model"
	"github.com/Lry0305/insurtech-insight/internal/search"
)

// 搜索摘要短于该长度时尝试抓取原文
const minContentLen = 200

// Crawler 按关键词检索新闻并抓取正文，产出原始记录序列。
// 它只是流水线的外部采集协作方：流水线本身不感知网络。
type Crawler struct {
	searcher      search.Searcher
	maxPerKeyword int

	// 可替换的抓取函数，测试时注入
	fetch func(url string) (string, error)
}

// New 创建采集器实例
func New(searcher search.Searcher, maxPerKeyword int) *Crawler {
	return &Crawler{
		searcher:      searcher,
		maxPerKeyword: maxPerKeyword,
		fetch:         fetchAndCleanContent,
	}
}

// Crawl 对每个关键词检索最近三天的新闻，逐条整理为 RawRecord。
// 单个关键词或单篇文章失败只记日志并跳过，不中断整体采集。
// 来源信息字段携带检索关键词与发布日期，供日期提取使用。
func (c *Crawler) Crawl(ctx context.Context, keywords []string) []model.RawRecord {
	now := time.Now()
	endDate := now.Format(time.DateOnly)
	startDate := now.AddDate(0, 0, -3).Format(time.DateOnly)

	var records []model.RawRecord
	for _, kw := range keywords {
		logger.Log.Infof("正在搜索关键词: %s", kw)

		resp, err := c.searcher.Search(ctx, &search.Request{
			Query:      kw,
			Topic:      "news",
			MaxResults: c.maxPerKeyword,
			StartDate:  startDate,
			EndDate:    endDate,
		})
		if err != nil {
			logger.Log.Errorf("搜索关键词失败 [%s]: %v", kw, err)
			continue
		}

		for _, item := range resp.Results {
			content := item.Content
			if len(content) < minContentLen {
				fetched, err := c.fetch(item.URL)
				if err == nil && len(fetched) > len(content) {
					content = fetched
				} else if err != nil {
					logger.Log.Warnf("原文抓取失败，使用搜索摘要 [%s]: %v", item.Title, err)
				}
			}

			records = append(records, model.RawRecord{
				Title:      item.Title,
				Body:       content,
				URL:        item.URL,
				SourceInfo: fmt.Sprintf("关键词：%s 发布时间：%s", kw, item.PublishedDate),
			})
		}
	}
	return records
}

// fetchAndCleanContent 抓取 URL 并提取正文纯文本
func fetchAndCleanContent(url string) (string, error) {
	article, err := readability.FromURL(url, 30*time.Second)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}
