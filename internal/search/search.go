package search

import "context"

// Searcher 定义通用的新闻搜索接口，采集器通过它检索候选文章
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query      string
	Topic      string // "news" 或 "general"
	MaxResults int
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	URL           string
	Content       string
	Score         float64
	PublishedDate string
	Source        string
}
