package queue

import (
	"encoding/json"
	"strings"

	"github.com/foodgram-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskImageCleanup 删除已被替换或随菜谱删除的图片对象
	TaskImageCleanup = constants.TaskImageCleanup
)

// ImageCleanupPayload 图片清理任务载荷
type ImageCleanupPayload struct {
	Key    string `json:"key"`
	Reason string `json:"reason,omitempty"`
}

// NewImageCleanupTask 创建图片清理任务
func NewImageCleanupTask(payload ImageCleanupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskImageCleanup, body), nil
}

// ParseImageCleanupPayload 解析图片清理任务载荷
func ParseImageCleanupPayload(body []byte) (ImageCleanupPayload, error) {
	var payload ImageCleanupPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, err
	}
	payload.Key = strings.TrimSpace(payload.Key)
	return payload, nil
}
