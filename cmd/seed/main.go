package main

import (
	"log"
	"os"

	"procureflow-be/internal/model"
	"procureflow-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type permissionSeed struct {
	Resource string
	Action   string
	Desc     string
}

// permissionCatalog is the authoritative list of resource:action pairs the
// authorization service checks against.
var permissionCatalog = []permissionSeed{
	{"users", "create", "Create users"},
	{"users", "read", "View users"},
	{"users", "update", "Update users and assign roles"},
	{"users", "delete", "Deactivate or remove users"},
	{"roles", "create", "Create roles"},
	{"roles", "read", "View roles and permissions"},
	{"roles", "update", "Update roles and their permissions"},
	{"roles", "delete", "Delete roles"},
	{"payments", "create", "Create payments"},
	{"payments", "read", "View payments and rail balances"},
	{"payments", "update", "Edit or cancel pending payments"},
	{"payments", "approve", "Approve payments for settlement"},
	{"payments", "process", "Trigger payment settlement"},
	{"fraud_alerts", "read", "View fraud alerts"},
	{"fraud_alerts", "review", "Review and dismiss fraud alerts"},
	{"procurements", "create", "Create procurements"},
	{"procurements", "read", "View procurements"},
	{"procurements", "update", "Update procurements"},
	{"procurements", "delete", "Delete draft procurements"},
	{"purchase_requests", "create", "Create purchase requests"},
	{"purchase_requests", "read", "View purchase requests"},
	{"purchase_requests", "update", "Edit and submit purchase requests"},
	{"purchase_requests", "approve", "Approve or reject purchase requests"},
	{"purchase_requests", "delete", "Delete draft purchase requests"},
	{"revenues", "create", "Record revenues"},
	{"revenues", "read", "View revenues"},
	{"revenues", "delete", "Delete revenue records"},
	{"audit_logs", "read", "View the audit trail"},
	{"analytics", "read", "View dashboards"},
	{"analytics", "export", "Export data as CSV"},
	{"attachments", "create", "Upload attachments"},
	{"attachments", "read", "View and download attachments"},
	{"attachments", "delete", "Delete attachments"},
}

// rolePermissions maps each seeded role to its grants as resource:action
// strings. "*" grants the whole catalog.
var rolePermissions = map[string][]string{
	"admin": {"*"},
	"finance_officer": {
		"payments:create", "payments:read", "payments:update", "payments:approve", "payments:process",
		"fraud_alerts:read", "fraud_alerts:review",
		"revenues:create", "revenues:read", "revenues:delete",
		"analytics:read", "analytics:export",
		"attachments:create", "attachments:read",
		"purchase_requests:read",
	},
	"procurement_officer": {
		"procurements:create", "procurements:read", "procurements:update", "procurements:delete",
		"purchase_requests:create", "purchase_requests:read", "purchase_requests:update",
		"purchase_requests:approve", "purchase_requests:delete",
		"payments:read",
		"attachments:create", "attachments:read", "attachments:delete",
	},
	"analyst": {
		"payments:read", "fraud_alerts:read", "procurements:read", "purchase_requests:read",
		"revenues:read", "audit_logs:read", "analytics:read", "analytics:export",
		"attachments:read",
	},
}

var roleDescriptions = map[string]string{
	"admin":               "Full access to every resource",
	"finance_officer":     "Manages payments, revenues and fraud review",
	"procurement_officer": "Manages procurements and purchase requests",
	"analyst":             "Read-only reporting access",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding Permission Catalog...")
	permsByKey := seedPermissions(db)

	color.Cyan("Seeding Roles...")
	seedRoles(db, permsByKey)

	color.Cyan("Seeding Superuser...")
	seedSuperuser(db)

	color.Green("✅ Seeding completed!")
}

func seedPermissions(db *gorm.DB) map[string]model.Permission {
	permsByKey := make(map[string]model.Permission, len(permissionCatalog))

	for _, p := range permissionCatalog {
		name := p.Resource + ":" + p.Action

		var existing model.Permission
		if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
			permsByKey[name] = existing
			continue
		}

		perm := model.Permission{
			Name:        name,
			Resource:    p.Resource,
			Action:      p.Action,
			Description: p.Desc,
		}
		if err := db.Create(&perm).Error; err != nil {
			color.Red("Error creating permission '%s': %v", name, err)
			continue
		}
		log.Printf("Created permission: %s", name)
		permsByKey[name] = perm
	}

	return permsByKey
}

func seedRoles(db *gorm.DB, permsByKey map[string]model.Permission) {
	for name, grants := range rolePermissions {
		var existing model.Role
		if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
			log.Printf("Role '%s' already exists, skipping...", name)
			continue
		}

		var perms []model.Permission
		if len(grants) == 1 && grants[0] == "*" {
			for _, p := range permsByKey {
				perms = append(perms, p)
			}
		} else {
			for _, g := range grants {
				if p, ok := permsByKey[g]; ok {
					perms = append(perms, p)
				} else {
					color.Yellow("Warn: unknown grant '%s' for role '%s'", g, name)
				}
			}
		}

		role := model.Role{
			Name:        name,
			Description: roleDescriptions[name],
			Permissions: perms,
		}
		if err := db.Create(&role).Error; err != nil {
			color.Red("Error creating role '%s': %v", name, err)
		} else {
			log.Printf("Created role: %s (%d permissions)", name, len(perms))
		}
	}
}

func seedSuperuser(db *gorm.DB) {
	email := os.Getenv("SUPERUSER_EMAIL")
	if email == "" {
		email = "admin@procureflow.local"
	}
	password := os.Getenv("SUPERUSER_PASSWORD")
	if password == "" {
		password = "changeme123"
		color.Yellow("Warn: SUPERUSER_PASSWORD not set, using default")
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Superuser '%s' already exists, skipping...", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error hashing superuser password: %v", err)
		return
	}
	hashStr := string(hash)

	user := model.User{
		Email:        email,
		PasswordHash: &hashStr,
		FullName:     "System Administrator",
		IsActive:     true,
		IsSuperuser:  true,
	}
	if err := db.Create(&user).Error; err != nil {
		color.Red("Error creating superuser: %v", err)
	} else {
		log.Printf("Created superuser: %s", email)
	}
}
