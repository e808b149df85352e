// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/domain/order"
	"github.com/your-org/pos-terminal/internal/domain/user"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	models := []interface{}{
		&user.User{},
		&catalog.Product{},
		&order.CompletedOrder{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_barcode ON products(barcode)",
		"CREATE INDEX IF NOT EXISTS idx_orders_timestamp ON completed_orders(timestamp DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_payment_method ON completed_orders(payment_method)",
		"CREATE INDEX IF NOT EXISTS idx_users_username_active ON users(username, is_active)",
	}

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
		}
	}
	return nil
}

// SeedInitialData inserts the demo catalog and the default admin operator.
// Intended for development environments only.
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedAdminUser() error {
	var existing user.User
	result := m.db.Where("username = ?", "admin").First(&existing)
	if result.Error == nil {
		log.Printf("⏭️ Admin user already exists with ID: %d", existing.ID)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123!"), 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	adminUser := user.User{
		Username:     "admin",
		DisplayName:  "ผู้ดูแลระบบ",
		PasswordHash: string(hashedPassword),
		Role:         user.RoleAdmin,
		IsActive:     true,
	}

	if err := m.db.Create(&adminUser).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("✅ Created admin user: admin (password: admin123!)")
	return nil
}

// seedProducts loads the coffee-shop demo catalog
func (m *Migration) seedProducts() error {
	var productCount int64
	m.db.Model(&catalog.Product{}).Count(&productCount)
	if productCount > 0 {
		log.Println("⏭️ Products already exist")
		return nil
	}

	products := []catalog.Product{
		{ID: "1", Name: "กาแฟดำร้อน", Price: decimal.NewFromInt(35), Category: "เครื่องดื่มร้อน", Stock: 20, Barcode: "1001", Description: "กาแฟดำแท้ 100%"},
		{ID: "2", Name: "กาแฟนมร้อน", Price: decimal.NewFromInt(45), Category: "เครื่องดื่มร้อน", Stock: 15, Barcode: "1002", Description: "กาแฟนมสูตรพิเศษ"},
		{ID: "3", Name: "ชาเขียวมัทฉะ", Price: decimal.NewFromInt(55), Category: "เครื่องดื่มร้อน", Stock: 12, Barcode: "1003", Description: "ชาเขียวญี่ปุ่นแท้"},
		{ID: "4", Name: "ลาเต้ชาไทย", Price: decimal.NewFromInt(50), Category: "เครื่องดื่มร้อน", Stock: 18, Barcode: "1004", Description: "ลาเต้สูตรไทย"},
		{ID: "5", Name: "น้ำส้มสด", Price: decimal.NewFromInt(40), Category: "เครื่องดื่มเย็น", Stock: 25, Barcode: "2001", Description: "น้ำส้มสดคั้นใหม่"},
		{ID: "6", Name: "ชานมเย็น", Price: decimal.NewFromInt(35), Category: "เครื่องดื่มเย็น", Stock: 22, Barcode: "2002", Description: "ชานมเย็นสูตรเย็น"},
		{ID: "7", Name: "ขนมปังสังขยา", Price: decimal.NewFromInt(25), Category: "ขนม", Stock: 15, Barcode: "3001", Description: "ขนมปังสังขยาโฮมเมด"},
		{ID: "8", Name: "ครัวซองต์", Price: decimal.NewFromInt(30), Category: "ขนม", Stock: 12, Barcode: "3002", Description: "ครัวซองต์เนยสด"},
		{ID: "9", Name: "เค้กช็อกโกแลต", Price: decimal.NewFromInt(85), Category: "ขนม", Stock: 8, Barcode: "3003", Description: "เค้กช็อกโกแลต 3 ชั้น"},
		{ID: "10", Name: "แซนด์วิชไก่", Price: decimal.NewFromInt(75), Category: "อาหาร", Stock: 10, Barcode: "4001", Description: "แซนด์วิชไก่ย่าง"},
		{ID: "11", Name: "สลัดผัก", Price: decimal.NewFromInt(65), Category: "อาหาร", Stock: 14, Barcode: "4002", Description: "สลัดผักสดรวม"},
		{ID: "12", Name: "โยเกิร์ตกรีก", Price: decimal.NewFromInt(45), Category: "ของหวาน", Stock: 20, Barcode: "5001", Description: "โยเกิร์ตกรีกแท้"},
	}

	for _, p := range products {
		if err := m.db.Create(&p).Error; err != nil {
			return fmt.Errorf("failed to create product %s: %w", p.ID, err)
		}
	}

	log.Printf("✅ Created %d demo products", len(products))
	return nil
}
