package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-walker/api"
	api_i "github.com/beka-birhanu/vinom-walker/api/i"
	sessionapi "github.com/beka-birhanu/vinom-walker/api/session"
	"github.com/beka-birhanu/vinom-walker/config"
	"github.com/beka-birhanu/vinom-walker/infrastruture/imagequeue"
	"github.com/beka-birhanu/vinom-walker/infrastruture/repo"
	"github.com/beka-birhanu/vinom-walker/layout"
	"github.com/beka-birhanu/vinom-walker/service"
	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient       *mongo.Client
	redisClient       *redis.Client
	imageQueue        i.ImageQueue
	layoutRepo        i.LayoutRepo
	sessionManager    *service.SessionManager
	sessionController api_i.Controller
	imageController   api_i.Controller
	router            *api.Router
	appLogger         *log.Logger
)

func newLogger(name, color string) *log.Logger {
	return log.New(os.Stdout, fmt.Sprintf("%s[%s]%s ", color, name, config.ColorReset), log.LstdFlags)
}

func initMongo(ctx context.Context) {
	if config.Envs.DBURI == "" {
		appLogger.Printf("%s[INFO]%s DB_URI is empty, layout history disabled", config.LogInfoColor, config.LogColorReset)
		return
	}

	clientOptions := options.Client().ApplyURI(config.Envs.DBURI)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Printf("%s[ERROR]%s Failed to connect to MongoDB: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Printf("%s[ERROR]%s MongoDB ping failed: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Connected to MongoDB", config.LogInfoColor, config.LogColorReset)
}

func initLayoutRepo(client *mongo.Client) {
	if client == nil {
		return
	}
	layoutRepo = repo.NewLayoutRepo(client, config.Envs.DBName, "layouts")
	appLogger.Printf("%s[INFO]%s Layout repository initialized", config.LogInfoColor, config.LogColorReset)
}

func initImageQueue(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		imageQueue = imagequeue.NewMemoryImageQueue(true)
		appLogger.Printf("%s[INFO]%s REDIS_ADDR is empty, using an in-memory image queue", config.LogInfoColor, config.LogColorReset)
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Printf("%s[ERROR]%s Redis ping failed: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}

	var err error
	imageQueue, err = imagequeue.NewRedisImageQueue(redisClient, config.Envs.ImageQueueKey, config.Envs.ImageBatchSize, newLogger("IMAGE-QUEUE", config.ColorMagenta))
	if err != nil {
		appLogger.Printf("%s[ERROR]%s Creating image queue: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Image queue initialized on %s", config.LogInfoColor, config.LogColorReset, config.Envs.ImageQueueKey)
}

func initSessionManager() {
	var err error
	sessionManager, err = service.NewSessionManager(&service.SessionManagerConfig{
		Images:     imageQueue,
		Layouts:    layoutRepo,
		TickRate:   config.Envs.TickRate,
		ExitChance: 0.2,
		Logger:     newLogger("SESSION-MANAGER", config.ColorCyan),
	})
	if err != nil {
		appLogger.Printf("%s[ERROR]%s Creating session manager: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Session manager initialized", config.LogInfoColor, config.LogColorReset)
}

func initControllers() {
	mode, err := layout.ParseMode(config.Envs.DefaultMode)
	if err != nil {
		appLogger.Printf("%s[ERROR]%s DEFAULT_MODE: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}

	sessionController, err = sessionapi.NewSessionController(sessionManager, mode, config.Envs.DefaultSize)
	if err != nil {
		appLogger.Printf("%s[ERROR]%s Creating session controller: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	imageController, err = sessionapi.NewImageController(imageQueue)
	if err != nil {
		appLogger.Printf("%s[ERROR]%s Creating image controller: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Controllers initialized", config.LogInfoColor, config.LogColorReset)
}

func initRouter() {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:     "/api",
		Controllers: []api_i.Controller{sessionController, imageController},
	})
	appLogger.Printf("%s[INFO]%s Router initialized", config.LogInfoColor, config.LogColorReset)
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger = newLogger("APP", config.ColorBlue)

	initMongo(ctx)
	defer func() {
		if mongoClient != nil {
			_ = mongoClient.Disconnect(context.Background())
		}
	}()
	initLayoutRepo(mongoClient)

	initImageQueue(ctx)
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	initSessionManager()
	defer sessionManager.StopAll()
	initControllers()
	initRouter()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Printf("%s[ERROR]%s Starting server: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
}
