// Package api contains all endpoints available
package api

import (
	"bitwise74/voice-api/middleware"
	"bitwise74/voice-api/security"
	"bitwise74/voice-api/service"
	"bitwise74/voice-api/storage"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var cacheStore = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Argon  *security.ArgonHash
	Store  storage.Store
	Voices *service.Voices
	Audio  *service.Audio
}

// NewRouter wires the REST surface around the injected collaborators.
// The database, file store and TTS provider are built in main so tests
// can swap them out.
func NewRouter(db *gorm.DB, store storage.Store, provider service.Provider) (*API, error) {
	a := &API{
		DB:     db,
		Argon:  security.NewArgon(),
		Store:  store,
		Voices: service.NewVoices(db, store, provider),
		Audio:  service.NewAudio(db, store, provider),
	}

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	jwt := middleware.NewJWTMiddleware()
	maxUploadSize := viper.GetInt64("upload.max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a JWT token
		main.HEAD("/validate", jwt, a.Validate)
	}

	auth := main.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/register 	-> Registers a new user
		auth.POST("/register", a.AuthRegister)

		// POST /api/auth/login 	-> Logs in a user and returns a JWT token
		auth.POST("/login", a.AuthLogin)

		// GET /api/auth/profile	-> Returns the user, their voice and some stats
		auth.GET("/profile", jwt, cachePerUser(30), a.AuthProfile)
	}

	voices := main.Group("/voices", jwt)
	{
		// POST /api/voices 		-> Clones a voice from an uploaded sample
		voices.POST("", middleware.BodySizeLimiter(maxUploadSize+(1<<20)), a.VoiceCreate)

		// GET /api/voices/mine 	-> Returns the user's voice clone
		voices.GET("/mine", a.VoiceFetch)

		// GET /api/voices/status 	-> Reports the clone state, polled by the frontend
		voices.GET("/status", a.VoiceStatus)

		// DELETE /api/voices/mine 	-> Deletes the voice clone and all generated audio
		voices.DELETE("/mine", a.VoiceDelete)
	}

	audio := main.Group("/audio", jwt, middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/audio		-> Generates speech from text with the voice clone
		audio.POST("", a.AudioGenerate)

		// GET /api/audio/history	-> Returns the generation history, paginated
		audio.GET("/history", a.AudioHistory)

		// GET /api/audio/:id		-> Returns a single generated audio
		audio.GET("/:id", a.AudioFetch)

		// DELETE /api/audio/:id	-> Deletes a generated audio and its file
		audio.DELETE("/:id", a.AudioDelete)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(logLevel())
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func logLevel() zapcore.Level {
	switch viper.GetString("app.log_level") {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// cachePerUser caches a response per authenticated user. Keying on the
// URI alone would leak responses between users.
func cachePerUser(sec int) gin.HandlerFunc {
	return cache.Cache(cacheStore, time.Second*time.Duration(sec), cache.WithCacheStrategyByRequest(func(c *gin.Context) (bool, cache.Strategy) {
		return true, cache.Strategy{
			CacheKey: c.Request.URL.Path + ":" + c.GetString("userID"),
		}
	}))
}
