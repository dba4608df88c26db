package datafeed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/graymarsh/stocksage/Internal/types"
)

// NewsStorage caches fetched articles so repeated analyses of the same
// symbol do not burn API quota.
type NewsStorage struct {
	db *sql.DB
}

func NewNewsStorage(db *sql.DB) *NewsStorage {
	return &NewsStorage{db: db}
}

func (ns *NewsStorage) SaveArticles(ctx context.Context, symbol string, articles []types.NewsArticle) error {
	if ns.db == nil {
		return fmt.Errorf("news storage not initialized")
	}

	tx, err := ns.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO news_articles (symbol, title, url, source, sentiment, published_at, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range articles {
		if _, err := stmt.ExecContext(ctx, symbol, a.Title, a.URL, a.Source, a.Sentiment, a.Date, a.Summary); err != nil {
			return fmt.Errorf("failed to insert article: %w", err)
		}
	}
	return tx.Commit()
}

func (ns *NewsStorage) GetLatestNews(ctx context.Context, symbol string, limit int) ([]types.NewsArticle, error) {
	if ns.db == nil {
		return nil, fmt.Errorf("news storage not initialized")
	}

	rows, err := ns.db.QueryContext(ctx, `
		SELECT title, url, source, sentiment, published_at, summary
		FROM news_articles
		WHERE symbol = $1
		ORDER BY fetched_at DESC
		LIMIT $2`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}
	defer rows.Close()

	var articles []types.NewsArticle
	for rows.Next() {
		var a types.NewsArticle
		if err := rows.Scan(&a.Title, &a.URL, &a.Source, &a.Sentiment, &a.Date, &a.Summary); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
