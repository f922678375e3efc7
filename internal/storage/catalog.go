// Package storage 持久化已转发的源记录，供后续关联（断点绑定等）查询。
package storage

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"devsrctool/internal/logger"
	"devsrctool/pkg/domain"
)

// SourceRecord 源记录的持久化模型。
// (pipeline, spidermonkeyId) 唯一：同一脚本被重复上报时覆盖旧记录。
type SourceRecord struct {
	ID                  uint   `gorm:"primaryKey"`
	PipelineNamespaceID uint32 `gorm:"uniqueIndex:idx_pipeline_script"`
	PipelineIndex       uint32 `gorm:"uniqueIndex:idx_pipeline_script"`
	SpidermonkeyID      uint32 `gorm:"uniqueIndex:idx_pipeline_script"`
	URL                 string
	IntroductionType    string
	Inline              bool
	WorkerID            *string
	Content             *string
	ContentType         *string
	CreatedAt           time.Time
}

// Catalog 源记录目录
type Catalog struct {
	db *gorm.DB
}

// Open 打开（必要时创建）sqlite 源记录目录
func Open(dsn, prefix string, l logger.Logger) (*Catalog, error) {
	if l == nil {
		l = logger.NewNop()
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         newGormLogger(l),
		NamingStrategy: schema.NamingStrategy{TablePrefix: prefix},
	})
	if err != nil {
		return nil, fmt.Errorf("open source catalog %q: %w", dsn, err)
	}
	if err := db.AutoMigrate(&SourceRecord{}); err != nil {
		return nil, fmt.Errorf("migrate source catalog: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Save 写入一条已转发的源记录；同一 (pipeline, spidermonkeyId) 重复写入时更新
func (c *Catalog) Save(pipeline domain.PipelineID, info domain.SourceInfo) error {
	rec := SourceRecord{
		PipelineNamespaceID: pipeline.NamespaceID,
		PipelineIndex:       pipeline.Index,
		SpidermonkeyID:      info.SpidermonkeyID,
		URL:                 info.URL.String(),
		IntroductionType:    info.IntroductionType,
		Inline:              info.Inline,
		Content:             info.Content,
		ContentType:         info.ContentType,
	}
	if info.WorkerID != nil {
		s := info.WorkerID.String()
		rec.WorkerID = &s
	}

	err := c.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "pipeline_namespace_id"},
			{Name: "pipeline_index"},
			{Name: "spidermonkey_id"},
		},
		UpdateAll: true,
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save source record: %w", err)
	}
	return nil
}

// ListByPipeline 按管线列出源记录，按写入顺序返回
func (c *Catalog) ListByPipeline(pipeline domain.PipelineID) ([]SourceRecord, error) {
	var records []SourceRecord
	err := c.db.
		Where("pipeline_namespace_id = ? AND pipeline_index = ?", pipeline.NamespaceID, pipeline.Index).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list source records for %s: %w", pipeline.String(), err)
	}
	return records, nil
}

// Close 关闭底层数据库连接
func (c *Catalog) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
