package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"example.com/catalog-dashboard/internal/infra/persistence/mysql"
	"example.com/catalog-dashboard/internal/infra/security"
	redisession "example.com/catalog-dashboard/internal/infra/session"
	api "example.com/catalog-dashboard/internal/interface/http"
	authuc "example.com/catalog-dashboard/internal/usecase/auth"
	categoryuc "example.com/catalog-dashboard/internal/usecase/category"
	prefsuc "example.com/catalog-dashboard/internal/usecase/prefs"
	productuc "example.com/catalog-dashboard/internal/usecase/product"
	useruc "example.com/catalog-dashboard/internal/usecase/user"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	port := getenv("APP_PORT", "8080")
	mysqlDSN := getenv("MYSQL_DSN", "user:pass@tcp(mysql:3306)/appdb?parseTime=true")
	redisAddr := getenv("REDIS_ADDR", "localhost:6379")
	jwtSecret := getenv("JWT_SECRET", "dev-secret")
	jwtTTL := durationEnv("JWT_TTL", 24*time.Hour)
	sessionTTL := durationEnv("SESSION_TTL", 30*24*time.Hour)

	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		logger.Fatal("mysql open", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("mysql ping", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: getenv("REDIS_PASSWORD", ""),
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis ping", zap.Error(err))
	}
	logger.Info("redis connection established")

	users := mysql.NewUserRepository(db)
	profiles := mysql.NewProfileRepository(db)
	products := mysql.NewProductRepository(db)
	categories := mysql.NewCategoryRepository(db)

	sessions := redisession.NewRedisStore(rdb, sessionTTL)
	hasher := security.NewBcryptHasher(0)
	tokens := security.NewJWTService(jwtSecret, jwtTTL)

	server := api.NewAPI(api.Dependencies{
		AuthService:     authuc.NewService(users, profiles, sessions, hasher, tokens),
		UserService:     useruc.NewService(users),
		ProductService:  productuc.NewService(products),
		CategoryService: categoryuc.NewService(categories),
		PrefsService:    prefsuc.NewService(sessions, profiles),
		Sessions:        sessions,
		TokenService:    tokens,
		Logger:          logger,
	})

	logger.Info("listening", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, server.Router()); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durationEnv(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
