package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/linkmetrics/internal/analytics"
	"github.com/serroba/linkmetrics/internal/shortener"
)

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// PostgresStore is a PostgreSQL implementation of shortener.Repository and
// analytics.Store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Save(ctx context.Context, shortURL *shortener.ShortURL) error {
	query := `
		INSERT INTO short_urls (id, long_url, short_token, custom_alias, topic, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		shortURL.ID,
		shortURL.LongURL,
		string(shortURL.ShortToken),
		nullableAlias(shortURL.CustomAlias),
		nullableTopic(shortURL.Topic),
		shortURL.CreatedAt,
	)
	if err != nil {
		// Unique constraints on short_token and custom_alias resolve the
		// create race; the loser sees a conflict.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return shortener.ErrAliasTaken
		}

		return err
	}

	return nil
}

func (p *PostgresStore) FindByAlias(ctx context.Context, alias shortener.Alias) (*shortener.ShortURL, error) {
	query := `
		SELECT id, long_url, short_token, custom_alias, topic, created_at
		FROM short_urls
		WHERE short_token = $1 OR custom_alias = $1
		LIMIT 1
	`

	return p.queryOne(ctx, query, string(alias))
}

func (p *PostgresStore) FindByCustomAlias(ctx context.Context, alias shortener.Alias) (*shortener.ShortURL, error) {
	query := `
		SELECT id, long_url, short_token, custom_alias, topic, created_at
		FROM short_urls
		WHERE custom_alias = $1
		LIMIT 1
	`

	return p.queryOne(ctx, query, string(alias))
}

func (p *PostgresStore) queryOne(ctx context.Context, query string, arg any) (*shortener.ShortURL, error) {
	var (
		url         shortener.ShortURL
		customAlias *string
		topic       *string
	)

	err := p.pool.QueryRow(ctx, query, arg).Scan(
		&url.ID,
		&url.LongURL,
		&url.ShortToken,
		&customAlias,
		&topic,
		&url.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	if customAlias != nil {
		url.CustomAlias = shortener.Alias(*customAlias)
	}

	if topic != nil {
		url.Topic = shortener.Topic(*topic)
	}

	return &url, nil
}

func (p *PostgresStore) FindByTopic(ctx context.Context, topic shortener.Topic) ([]*shortener.ShortURL, error) {
	query := `
		SELECT id, long_url, short_token, custom_alias, topic, created_at
		FROM short_urls
		WHERE topic = $1
		ORDER BY created_at
	`

	rows, err := p.pool.Query(ctx, query, string(topic))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []*shortener.ShortURL

	for rows.Next() {
		var (
			url         shortener.ShortURL
			customAlias *string
			topicCol    *string
		)

		if err := rows.Scan(
			&url.ID,
			&url.LongURL,
			&url.ShortToken,
			&customAlias,
			&topicCol,
			&url.CreatedAt,
		); err != nil {
			return nil, err
		}

		if customAlias != nil {
			url.CustomAlias = shortener.Alias(*customAlias)
		}

		if topicCol != nil {
			url.Topic = shortener.Topic(*topicCol)
		}

		urls = append(urls, &url)
	}

	return urls, rows.Err()
}

func (p *PostgresStore) InsertClick(ctx context.Context, event *analytics.ClickEvent) error {
	query := `
		INSERT INTO click_events (id, alias, occurred_at, user_agent, ip_address, geolocation)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		event.ID,
		event.Alias,
		event.OccurredAt,
		event.UserAgent,
		event.IPAddress,
		event.Geolocation,
	)

	return err
}

func (p *PostgresStore) GroupedByAgent(ctx context.Context, alias string) ([]analytics.EventGroup, error) {
	// min(ip_address) is the group's single representative IP; unique-user
	// counts downstream are taken over these representatives only.
	query := `
		SELECT alias,
		       to_char(occurred_at, 'YYYY-MM-DD') AS click_date,
		       user_agent,
		       count(*) AS total_clicks,
		       count(DISTINCT ip_address) AS unique_ips,
		       min(ip_address) AS ip_address
		FROM click_events
		WHERE alias = $1
		GROUP BY alias, click_date, user_agent
		ORDER BY min(occurred_at)
	`

	rows, err := p.pool.Query(ctx, query, alias)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGroups(rows)
}

func (p *PostgresStore) GroupedByDate(ctx context.Context, aliases []string) ([]analytics.EventGroup, error) {
	query := `
		SELECT alias,
		       to_char(occurred_at, 'YYYY-MM-DD') AS click_date,
		       '' AS user_agent,
		       count(*) AS total_clicks,
		       count(DISTINCT ip_address) AS unique_ips,
		       min(ip_address) AS ip_address
		FROM click_events
		WHERE alias = ANY($1)
		GROUP BY alias, click_date
		ORDER BY min(occurred_at)
	`

	rows, err := p.pool.Query(ctx, query, aliases)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGroups(rows)
}

func scanGroups(rows pgx.Rows) ([]analytics.EventGroup, error) {
	var groups []analytics.EventGroup

	for rows.Next() {
		var g analytics.EventGroup

		if err := rows.Scan(
			&g.Alias,
			&g.ClickDate,
			&g.UserAgent,
			&g.TotalClicks,
			&g.UniqueIPs,
			&g.IPAddress,
		); err != nil {
			return nil, err
		}

		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// Ping checks database connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Compile-time checks.
var (
	_ shortener.Repository = (*PostgresStore)(nil)
	_ analytics.Store      = (*PostgresStore)(nil)
)

func nullableAlias(a shortener.Alias) *string {
	if a == "" {
		return nil
	}

	s := string(a)

	return &s
}

func nullableTopic(t shortener.Topic) *string {
	if t == "" {
		return nil
	}

	s := string(t)

	return &s
}
