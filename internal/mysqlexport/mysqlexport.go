// Package mysqlexport loads collected json records into a relational
// mysql schema for downstream consumers that cannot work with a
// directory of files.
package mysqlexport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"medicollector/internal/collector"
	"medicollector/lib/scrapers/encyc"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var tracer = otel.Tracer("medicollector.internal.mysqlexport")

const DefaultBatchSize = 100

type Config struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
}

func (c Config) Dsn() string {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port == 0 {
		port = 3306
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, host, port, c.Database,
	)
}

type Stats struct {
	Processed int
	Inserted  int
	Skipped   int
	Failed    int
}

type Exporter struct {
	db *gorm.DB

	// category code -> row id, avoids a select per record
	categoryCache map[string]int64
}

func Open(config Config) (*Exporter, error) {
	if config.User == "" || config.Database == "" {
		return nil, errors.New("mysql user and database must be configured")
	}
	db, err := gorm.Open(mysql.Open(config.Dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&MedicineInfo{},
		&MedicineCategory{},
		&MedicineDivision{},
		&MedicineImage{},
	)
	if err != nil {
		return nil, err
	}
	return &Exporter{
		db:            db,
		categoryCache: map[string]int64{},
	}, nil
}

// ExportDir loads every record in the data directory, committing in
// batches. records whose id already exists are skipped, not updated.
func (e *Exporter) ExportDir(ctx context.Context, dataDir string, batchSize int) (Stats, error) {
	ctx, span := tracer.Start(ctx, "ExportDir")
	defer span.End()

	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var stats Stats
	files, err := collector.ListRecordFiles(dataDir)
	if err != nil {
		return stats, err
	}

	var batch []*encyc.Document
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := e.exportBatch(ctx, batch, &stats)
		batch = batch[:0]
		return err
	}

	for _, file := range files {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		doc, err := collector.LoadDocument(file)
		if err != nil {
			slog.WarnContext(ctx, "skipping unreadable record", "file", file, "err", err)
			stats.Failed++
			continue
		}
		batch = append(batch, doc)
		if len(batch) >= batchSize {
			err := flush()
			if err != nil {
				return stats, err
			}
		}
	}
	err = flush()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "export failed")
		return stats, err
	}

	slog.InfoContext(
		ctx, "mysql export finished",
		"processed", stats.Processed,
		"inserted", stats.Inserted,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	span.SetAttributes(
		attribute.Int("processed", stats.Processed),
		attribute.Int("inserted", stats.Inserted),
	)
	return stats, nil
}

func (e *Exporter) exportBatch(ctx context.Context, batch []*encyc.Document, stats *Stats) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, doc := range batch {
			stats.Processed++
			inserted, err := e.exportOne(tx, doc)
			if err != nil {
				slog.WarnContext(
					ctx, "could not export record",
					"id", doc.Get("id"),
					"err", err,
				)
				stats.Failed++
				continue
			}
			if inserted {
				stats.Inserted++
			} else {
				stats.Skipped++
			}
		}
		return nil
	})
}

func (e *Exporter) exportOne(tx *gorm.DB, doc *encyc.Document) (bool, error) {
	info := transformRecord(doc)
	if info.ID == "" {
		return false, errors.New("record has no id")
	}

	var count int64
	err := tx.Model(&MedicineInfo{}).Where("id = ?", info.ID).Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	err = e.ensureCategory(tx, info.Category)
	if err != nil {
		// a failed category lookup should not lose the record
		slog.Warn("could not register category", "category", info.Category, "err", err)
	}

	err = tx.Create(&info).Error
	if err != nil {
		return false, err
	}

	if doc.Division != nil && doc.Division.Description != "" {
		err = tx.Create(&MedicineDivision{
			MedicineID:          info.ID,
			DivisionDescription: doc.Division.Description,
			DivisionType:        doc.Division.Type,
		}).Error
		if err != nil {
			return true, err
		}
	}

	if info.ImageUrl != "" {
		err = tx.Create(&MedicineImage{
			MedicineID:  info.ID,
			ImageUrl:    info.ImageUrl,
			ImageWidth:  doc.Get("image_width"),
			ImageHeight: doc.Get("image_height"),
			ImageAlt:    doc.Get("image_alt"),
		}).Error
		if err != nil {
			return true, err
		}
	}
	return true, nil
}

var categoryCodePattern = regexp.MustCompile(`^\[([^\]]+)\](.*)`)

func (e *Exporter) ensureCategory(tx *gorm.DB, category string) error {
	groups := categoryCodePattern.FindStringSubmatch(category)
	if groups == nil {
		return nil
	}
	code := groups[1]
	name := strings.TrimSpace(groups[2])
	if _, ok := e.categoryCache[code]; ok {
		return nil
	}

	var existing MedicineCategory
	err := tx.Where("category_code = ?", code).First(&existing).Error
	if err == nil {
		e.categoryCache[code] = existing.ID
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row := MedicineCategory{CategoryCode: code, CategoryName: name}
	err = tx.Create(&row).Error
	if err != nil {
		return err
	}
	e.categoryCache[code] = row.ID
	return nil
}

func fieldOrEmpty(doc *encyc.Document, field string) string {
	value := doc.Get(field)
	if value == encyc.NoInformation {
		return ""
	}
	return value
}

func transformRecord(doc *encyc.Document) MedicineInfo {
	id := doc.Get("id")
	if id == "" || id == encyc.NoInformation {
		id = encyc.DocumentId(doc.Get("url"), doc.Get("korean_name"), doc.Get("company"))
	}
	sourceUrl := doc.Get("url")
	if sourceUrl == "" {
		sourceUrl = doc.Get("source_url")
	}
	return MedicineInfo{
		ID:             id,
		NameKr:         fieldOrEmpty(doc, "korean_name"),
		NameEn:         fieldOrEmpty(doc, "english_name"),
		Company:        fieldOrEmpty(doc, "company"),
		Type:           fieldOrEmpty(doc, "medicine_type"),
		Category:       fieldOrEmpty(doc, "category"),
		InsuranceCode:  fieldOrEmpty(doc, "insurance_code"),
		Appearance:     fieldOrEmpty(doc, "appearance"),
		Shape:          fieldOrEmpty(doc, "shape"),
		Color:          fieldOrEmpty(doc, "color"),
		Size:           fieldOrEmpty(doc, "size"),
		Identification: fieldOrEmpty(doc, "identification"),
		Components:     fieldOrEmpty(doc, "components"),
		Efficacy:       fieldOrEmpty(doc, "efficacy"),
		Precautions:    fieldOrEmpty(doc, "precautions"),
		Dosage:         fieldOrEmpty(doc, "dosage"),
		Storage:        fieldOrEmpty(doc, "storage"),
		Expiration:     fieldOrEmpty(doc, "expiration"),
		ImageUrl:       doc.Get("image_url"),
		SourceUrl:      sourceUrl,
		ExtractedTime:  parseDatetime(doc.Get("extracted_time")),
		UpdatedTime:    time.Now(),
	}
}

var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"02-01-2006 15:04:05",
	"02/01/2006 15:04:05",
}

func parseDatetime(value string) time.Time {
	for _, layout := range datetimeLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed
		}
	}
	return time.Now()
}
