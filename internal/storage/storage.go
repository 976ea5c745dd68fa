package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AwesomeAIDeveloper/urb-world-scribe-quest/internal/models"
	_ "modernc.org/sqlite"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("not found")

// Storage 以会话ID为键的冒险存档
type Storage struct {
	db *sql.DB
}

func New(dbPath string) (*Storage, error) {
	// 确保目录存在
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}
	// sqlite单写者
	db.SetMaxOpenConns(1)

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("初始化数据库结构失败: %w", err)
	}

	return s, nil
}

func (s *Storage) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		character_name TEXT,
		data TEXT NOT NULL, -- JSON session
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveSession 写入或覆盖会话
func (s *Storage) SaveSession(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("序列化会话失败: %w", err)
	}

	var characterName string
	if session.Character != nil {
		characterName = session.Character.Name
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, name, character_name, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			character_name=excluded.character_name,
			data=excluded.data,
			updated_at=excluded.updated_at
	`, session.ID, session.Name, characterName, string(data), session.CreatedAt, session.UpdatedAt)

	return err
}

// GetSession 读取会话
func (s *Storage) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM sessions WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("会话 %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("解析会话 %s 失败: %w", id, err)
	}

	return &session, nil
}

// ListSessions 会话列表，最近更新在前
func (s *Storage) ListSessions(ctx context.Context) ([]models.SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(character_name, ''), updated_at
		FROM sessions
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.SessionSummary{}
	for rows.Next() {
		var sum models.SessionSummary
		var updated time.Time
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.CharacterName, &updated); err != nil {
			return nil, err
		}
		sum.UpdatedAt = updated
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// DeleteSession 删除会话
func (s *Storage) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("会话 %s: %w", id, ErrNotFound)
	}
	return nil
}
