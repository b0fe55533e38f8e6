package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"consultation-system/models"
	"consultation-system/utils"
)

// ConsultationStore 按天落盘的咨询申请存储，独占数据目录
type ConsultationStore struct {
	dataDir string

	// mu 串行化所有文件访问: 追加的读-改-写不能互相覆盖，读也不能看到写了一半的文件
	mu sync.Mutex
}

// NewConsultationStore 创建文件存储
func NewConsultationStore(dataDir string) *ConsultationStore {
	return &ConsultationStore{dataDir: dataDir}
}

// Append 把申请追加到其创建日期对应的文件
func (s *ConsultationStore) Append(request *models.ConsultationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 创建data目录（幂等）
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("创建数据目录失败: %w", err)
	}

	date := request.CreatedAt.Format("2006-01-02")
	path := s.dayFilePath(date)

	// 读取当天已有申请，文件不存在时从空数组开始
	requests, err := s.readDayFile(path)
	if err != nil {
		// 文件存在但无法解析: 先隔离损坏文件再重新开始，不能静默覆盖
		utils.LogError(err, map[string]interface{}{
			"file": path,
		}, "当天申请文件损坏，移出后重新开始")
		s.quarantine(path)
		requests = nil
	}

	requests = append(requests, *request)

	data, err := json.MarshalIndent(requests, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化申请数据失败: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入申请文件失败: %w", err)
	}

	utils.Logger.Info().Str("id", request.ID).Str("file", path).Msg("咨询申请已保存")
	return nil
}

// GetByDate 读取某天的全部申请，文件不存在或不可读时返回空列表
func (s *ConsultationStore) GetByDate(date string) []models.ConsultationRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests, err := s.readDayFile(s.dayFilePath(date))
	if err != nil {
		utils.LogError(err, map[string]interface{}{
			"date": date,
		}, "读取当天申请文件失败")
	}
	if requests == nil {
		requests = []models.ConsultationRequest{}
	}
	return requests
}

// dayFilePath 拼出某天文件的路径
func (s *ConsultationStore) dayFilePath(date string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("consultations_%s.json", date))
}

// readDayFile 读取并解析某天的文件，文件不存在返回空且无错误
func (s *ConsultationStore) readDayFile(path string) ([]models.ConsultationRequest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("读取申请文件失败: %w", err)
	}

	var requests []models.ConsultationRequest
	if err := json.Unmarshal(content, &requests); err != nil {
		return nil, fmt.Errorf("解析申请文件失败: %w", err)
	}

	return requests, nil
}

// quarantine 把损坏的文件改名移出写入路径，保留现场
func (s *ConsultationStore) quarantine(path string) {
	corruptPath := fmt.Sprintf("%s.corrupt.%d", path, time.Now().Unix())
	if err := os.Rename(path, corruptPath); err != nil {
		utils.LogError(err, map[string]interface{}{
			"file": path,
		}, "隔离损坏文件失败")
		return
	}
	utils.Logger.Error().Str("file", path).Str("movedTo", corruptPath).Msg("损坏的申请文件已隔离")
}
