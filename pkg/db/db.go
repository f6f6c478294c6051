package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
)

// Leaf is one scalar of the helmet tree stored at its full slash separated path.
type Leaf struct {
	Path  string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

func (Leaf) TableName() string {
	return "rtdb_leaves"
}

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

func GetInstance(dialector gorm.Dialector) *DB {
	once.Do(func() {
		var err error
		if instance, err = New(dialector); err != nil {
			log.Fatal("Failed to open database: ", err)
		}
	})
	return instance
}

// New opens a database that is not shared with GetInstance, which is what
// tests and tools that need isolation use.
func New(dialector gorm.Dialector) (*DB, error) {
	logger := common.GetLoggerWith(common.LoggerNameStore)

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	if err := conn.AutoMigrate(&Leaf{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	logger.Info("Database migration completed")

	if err := conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
		return nil, fmt.Errorf("set sqlite journal mode: %w", err)
	}

	return &DB{Conn: conn}, nil
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(common.EnvKeyHelmetDbPath); !found {
		dbPath = "helmets.db"
	}
	return UseSqlitePathDialector(dbPath)
}

func UseSqlitePathDialector(path string) gorm.Dialector {
	return sqlite.Open(path)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

// UseNamedMemorySqliteDialector gives every name its own in-memory database.
func UseNamedMemorySqliteDialector(name string) gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}

// Store exposes the database as a hierarchical rtdb.Store.
func (d *DB) Store() *rtdb.TreeStore {
	return rtdb.NewTreeStore(&leafBackend{conn: d.Conn})
}

type leafBackend struct {
	conn *gorm.DB
}

func (b *leafBackend) View(ctx context.Context, fn func(rtdb.LeafTxn) error) error {
	return fn(&leafTxn{tx: b.conn.WithContext(ctx)})
}

func (b *leafBackend) Update(ctx context.Context, fn func(rtdb.LeafTxn) error) error {
	return b.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&leafTxn{tx: tx})
	})
}

func (b *leafBackend) Close() error {
	sqlDB, err := b.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type leafTxn struct {
	tx *gorm.DB
}

// subtree matches path itself and everything below it. '0' is the byte after
// '/', so the range covers exactly the "path/" prefix.
func subtree(tx *gorm.DB, path string) *gorm.DB {
	if path == "" {
		return tx.Where("1 = 1")
	}
	return tx.Where("path = ? OR (path >= ? AND path < ?)", path, path+"/", path+"0")
}

func (t *leafTxn) Scan(prefix string) (map[string][]byte, error) {
	var rows []Leaf
	if err := subtree(t.tx, prefix).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(rows))
	for _, r := range rows {
		out[r.Path] = []byte(r.Value)
	}
	return out, nil
}

func (t *leafTxn) Put(path string, raw []byte) error {
	return t.tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Leaf{Path: path, Value: string(raw)}).Error
}

func (t *leafTxn) Delete(path string) error {
	return t.tx.Where("path = ?", path).Delete(&Leaf{}).Error
}

func (t *leafTxn) DeleteTree(path string) error {
	return subtree(t.tx, path).Delete(&Leaf{}).Error
}
