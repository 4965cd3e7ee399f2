package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RoomInfo is the public directory entry for one room.
type RoomInfo struct {
	Code        string    `json:"code"`
	PlayerCount int       `json:"playerCount"`
	InGame      bool      `json:"inGame"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RoomDirectory publishes which rooms exist so a listing endpoint can show
// them. Rooms themselves live in process memory; the directory is a lossy
// mirror and every write is best effort.
type RoomDirectory interface {
	Save(ctx context.Context, info RoomInfo) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context) ([]RoomInfo, error)
}

type RedisRoomDirectory struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRoomDirectory(rdb *redis.Client, ttl time.Duration) *RedisRoomDirectory {
	return &RedisRoomDirectory{rdb: rdb, ttl: ttl}
}

func (d *RedisRoomDirectory) key(code string) string {
	return fmt.Sprintf("room:%s:info", code)
}

func (d *RedisRoomDirectory) Save(ctx context.Context, info RoomInfo) error {
	info.UpdatedAt = time.Now().UTC()
	b, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return d.rdb.Set(ctx, d.key(info.Code), b, d.ttl).Err()
}

func (d *RedisRoomDirectory) Delete(ctx context.Context, code string) error {
	return d.rdb.Del(ctx, d.key(code)).Err()
}

func (d *RedisRoomDirectory) List(ctx context.Context) ([]RoomInfo, error) {
	var infos []RoomInfo
	iter := d.rdb.Scan(ctx, 0, d.key("*"), 100).Iterator()
	for iter.Next(ctx) {
		val, err := d.rdb.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var info RoomInfo
		if err := json.Unmarshal(val, &info); err != nil {
			continue
		}
		infos = append(infos, info)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// NoopRoomDirectory is used when Redis is not configured.
type NoopRoomDirectory struct{}

func (NoopRoomDirectory) Save(context.Context, RoomInfo) error { return nil }
func (NoopRoomDirectory) Delete(context.Context, string) error { return nil }
func (NoopRoomDirectory) List(context.Context) ([]RoomInfo, error) {
	return nil, nil
}
