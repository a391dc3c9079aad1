package database

import (
	"errors"

	"github.com/rs/zerolog/log"
)

// PoolStats is the subset of pgxpool statistics reported by /health.
type PoolStats struct {
	TotalConns    int32 `json:"total_connections"`
	IdleConns     int32 `json:"idle_connections"`
	AcquiredConns int32 `json:"acquired_connections"`
	MaxConns      int32 `json:"max_connections"`
}

// Stats trả về thống kê pool hiện tại
func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, errors.New("database pool is not initialized")
	}

	stat := db.Pool.Stat()
	return &PoolStats{
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
		MaxConns:      stat.MaxConns(),
	}, nil
}

// Close đóng pool. Gọi nhiều lần vẫn an toàn.
func (db *PostgresDB) Close() {
	if db.Pool == nil {
		return
	}

	db.Pool.Close()
	db.Pool = nil
	log.Info().Msg("[DATABASE] Connection pool closed")
}
