package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "github.com/lib/pq"

	"github.com/Lry0305/insurtech-insight/internal/analytics"
	"github.com/Lry0305/insurtech-insight/internal/config"
	"github.com/Lry0305/insurtech-insight/internal/model"
)

// Storage 批次结果的 Postgres 持久化
type Storage struct {
	db *sql.DB
}

// NewStorage 建立数据库连接并初始化表结构
func NewStorage(cfg config.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id SERIAL PRIMARY KEY,
			article_count INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS insights (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES analysis_runs(id),
			row_index INTEGER,
			title TEXT,
			url TEXT,
			sentiment TEXT,
			opinion TEXT,
			keywords TEXT,
			entities TEXT,
			date_token TEXT,
			cluster_label INTEGER,
			raw_output TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS keyword_counts (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES analysis_runs(id),
			keyword TEXT,
			count INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS timeline_points (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES analysis_runs(id),
			date_token TEXT,
			sentiment TEXT,
			count INTEGER
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// CreateRun 创建一次分析批次记录，返回批次 ID
func (s *Storage) CreateRun(articleCount int) (int, error) {
	var id int
	err := s.db.QueryRow(
		`INSERT INTO analysis_runs (article_count) VALUES ($1) RETURNING id`,
		articleCount,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// SaveInsights 逐行保存分析表，行号保持与输入记录序列对齐
func (s *Storage) SaveInsights(runID int, table []model.Insight) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	for i, ins := range table {
		keywords, _ := json.Marshal(ins.Keywords)
		entities, _ := json.Marshal(ins.Entities)

		_, err := tx.Exec(
			`INSERT INTO insights (run_id, row_index, title, url, sentiment, opinion,
				keywords, entities, date_token, cluster_label, raw_output)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			runID, i, sanitizeText(ins.Title), ins.URL, ins.Sentiment,
			sanitizeText(ins.Opinion), string(keywords), string(entities),
			ins.Date, ins.Cluster, sanitizeText(ins.RawOutput),
		)
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				err = fmt.Errorf("%w: %v", err, rerr)
			}
			return err
		}
	}
	return tx.Commit()
}

// SaveKeywordCounts 保存关键词排行快照
func (s *Storage) SaveKeywordCounts(runID int, counts []analytics.KeywordCount) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, kc := range counts {
		if _, err := tx.Exec(
			`INSERT INTO keyword_counts (run_id, keyword, count) VALUES ($1, $2, $3)`,
			runID, kc.Keyword, kc.Count,
		); err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				err = fmt.Errorf("%w: %v", err, rerr)
			}
			return err
		}
	}
	return tx.Commit()
}

// SaveTimeline 保存时间趋势快照
func (s *Storage) SaveTimeline(runID int, points []analytics.TimelinePoint) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, p := range points {
		if _, err := tx.Exec(
			`INSERT INTO timeline_points (run_id, date_token, sentiment, count) VALUES ($1, $2, $3, $4)`,
			runID, p.Date, p.Sentiment, p.Count,
		); err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				err = fmt.Errorf("%w: %v", err, rerr)
			}
			return err
		}
	}
	return tx.Commit()
}

// sanitizeText 去掉非法 UTF-8 字符与 NULL 字节，
// Postgres 的文本字段不接受 NULL 字节
func sanitizeText(content string) string {
	if !utf8.ValidString(content) {
		v := make([]rune, 0, len(content))
		for _, r := range content {
			if r == utf8.RuneError {
				continue
			}
			v = append(v, r)
		}
		content = string(v)
	}
	return strings.ReplaceAll(content, "\x00", "")
}
