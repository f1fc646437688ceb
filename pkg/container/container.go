package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"consulting-backend/internal/config"
	adminHandler "consulting-backend/internal/domains/admin/handler"
	adminService "consulting-backend/internal/domains/admin/service"
	blogHandler "consulting-backend/internal/domains/blog/handler"
	blogModel "consulting-backend/internal/domains/blog/model"
	blogService "consulting-backend/internal/domains/blog/service"
	careersHandler "consulting-backend/internal/domains/careers/handler"
	careersModel "consulting-backend/internal/domains/careers/model"
	careersService "consulting-backend/internal/domains/careers/service"
	chatHandler "consulting-backend/internal/domains/chat/handler"
	chatService "consulting-backend/internal/domains/chat/service"
	contactInfoModel "consulting-backend/internal/domains/contactinfo/model"
	dashboardHandler "consulting-backend/internal/domains/dashboard/handler"
	dashboardModel "consulting-backend/internal/domains/dashboard/model"
	dashboardService "consulting-backend/internal/domains/dashboard/service"
	leadHandler "consulting-backend/internal/domains/lead/handler"
	leadModel "consulting-backend/internal/domains/lead/model"
	leadService "consulting-backend/internal/domains/lead/service"
	newsletterHandler "consulting-backend/internal/domains/newsletter/handler"
	newsletterModel "consulting-backend/internal/domains/newsletter/model"
	newsletterService "consulting-backend/internal/domains/newsletter/service"
	offeringModel "consulting-backend/internal/domains/offering/model"
	"consulting-backend/internal/domains/record"
	teamModel "consulting-backend/internal/domains/team/model"
	testimonialHandler "consulting-backend/internal/domains/testimonial/handler"
	testimonialModel "consulting-backend/internal/domains/testimonial/model"
	testimonialService "consulting-backend/internal/domains/testimonial/service"
	infraCache "consulting-backend/internal/infrastructure/cache"
	"consulting-backend/internal/infrastructure/database"
	"consulting-backend/internal/infrastructure/email"
	"consulting-backend/internal/infrastructure/filestore"
	"consulting-backend/internal/infrastructure/metrics"
	"consulting-backend/internal/infrastructure/queue"
	"consulting-backend/internal/infrastructure/storage"
	"consulting-backend/pkg/cache"
	"consulting-backend/pkg/jwt"
)

type (
	ContactInfoRecords = record.Service[contactInfoModel.Item, *contactInfoModel.Item]
	OfferingRecords    = record.Service[offeringModel.Offering, *offeringModel.Offering]
	TeamRecords        = record.Service[teamModel.Member, *teamModel.Member]
)

// Container is the root of the dependency graph shared by the API and the
// worker binaries.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB // nil when records live in JSON files
	Redis      *infraCache.RedisCache
	Cache      cache.Cache // Redis when reachable, otherwise in-process
	JWTManager *jwt.Manager
	Queue      *queue.Client // nil without Redis
	Sender     email.Sender
	Outbox     email.Outbox
	Storage    storage.Storage
	Images     *storage.ImageProcessor

	// Services
	LeadService        *leadService.Service
	NewsletterService  *newsletterService.Service
	BlogService        *blogService.Service
	PostingService     *careersService.PostingService
	ApplicationService *careersService.ApplicationService
	TestimonialService *testimonialService.Service
	ContactInfo        *ContactInfoRecords
	Offerings          *OfferingRecords
	Team               *TeamRecords
	ChatService        *chatService.Service
	DashboardService   *dashboardService.Service
	AuthService        *adminService.AuthService
	ExportService      *adminService.ExportService

	// Handlers
	LeadHandler        *leadHandler.LeadHandler
	NewsletterHandler  *newsletterHandler.NewsletterHandler
	BlogHandler        *blogHandler.BlogHandler
	JobHandler         *careersHandler.JobHandler
	ApplicationHandler *careersHandler.ApplicationHandler
	TestimonialHandler *testimonialHandler.TestimonialHandler
	ContactInfoHandler *record.Handler[contactInfoModel.Item, *contactInfoModel.Item]
	OfferingHandler    *record.Handler[offeringModel.Offering, *offeringModel.Offering]
	TeamHandler        *record.Handler[teamModel.Member, *teamModel.Member]
	ChatHandler        *chatHandler.ChatHandler
	DashboardHandler   *dashboardHandler.DashboardHandler
	AdminHandler       *adminHandler.AdminHandler

	stopMonitor context.CancelFunc
}

// NewContainer builds the graph in dependency order:
// config, database, cache, queue, mail, storage, services, handlers.
func NewContainer() (*Container, error) {
	log.Info().Msg("initializing container")

	c := &Container{}

	// ========================================
	// STEP 1: CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("config loaded")

	// ========================================
	// STEP 2: DATABASE (or JSON files)
	// ========================================
	if cfg.Database.URL != "" {
		if err := c.initDatabase(); err != nil {
			return nil, err
		}
	} else {
		log.Warn().Str("dir", cfg.Database.DataDir).Msg("DATABASE_URL not set, storing records in JSON files")
	}

	// ========================================
	// STEP 3: CACHE, QUEUE
	// ========================================
	c.initCache()
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// ========================================
	// STEP 4: MAIL AND FILE STORAGE
	// ========================================
	c.initEmail()
	if err := c.initStorage(); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 5: SERVICES
	// ========================================
	if err := c.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	// ========================================
	// STEP 6: HANDLERS
	// ========================================
	c.initHandlers()

	log.Info().Bool("postgres", c.DB != nil).Bool("redis", c.Redis != nil).Msg("container initialized")
	return c, nil
}

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	monitorCtx, stop := context.WithCancel(context.Background())
	go db.MonitorPoolHealth(monitorCtx, 30*time.Second, func(s *database.PoolStats) {
		metrics.UpdateDBConnections(int(s.AcquiredConns), int(s.IdleConns))
	})

	c.DB = db
	c.stopMonitor = stop
	log.Info().Msg("database connected")
	return nil
}

// initCache prefers Redis. Redis is not critical: on failure the process
// keeps running with an in-process cache and no background queue.
func (c *Container) initCache() {
	cfg := c.Config.Redis
	if cfg.Host != "" {
		rc := infraCache.NewRedisCache(cfg.Host, cfg.Password, cfg.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := rc.Connect(ctx); err != nil {
			log.Warn().Err(err).Msg("redis connection failed (non-critical)")
		} else {
			c.Redis = rc
			c.Cache = rc
			c.Queue = queue.NewClient(cfg.Host, cfg.Password, cfg.DB)
			log.Info().Msg("redis connected")
			return
		}
	}
	c.Cache = cache.NewMemory()
}

func (c *Container) initEmail() {
	cfg := c.Config.Email
	if cfg.Enabled() {
		c.Sender = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Username: cfg.Username,
			Password: cfg.Password,
			From:     cfg.From,
			FromName: cfg.FromName,
		})
	} else {
		log.Warn().Msg("SMTP_HOST not set, emails are logged instead of sent")
		c.Sender = email.NewLogSender()
	}

	direct := email.NewGoroutineOutbox(c.Sender, 30*time.Second)
	if c.Queue != nil {
		c.Outbox = email.NewQueueOutbox(c.Queue, direct)
		return
	}
	c.Outbox = direct
}

func (c *Container) initStorage() error {
	cfg := c.Config.Storage
	c.Images = storage.NewImageProcessor(cfg.MaxBytes)

	if cfg.Driver == "minio" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ms, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
		if err != nil {
			return fmt.Errorf("failed to init minio storage: %w", err)
		}
		c.Storage = ms
		log.Info().Str("bucket", c.Config.MinIO.Bucket).Msg("minio storage ready")
		return nil
	}

	ls, err := storage.NewLocalStorage(cfg.UploadDir, cfg.PublicURL)
	if err != nil {
		return fmt.Errorf("failed to init upload dir: %w", err)
	}
	c.Storage = ls
	return nil
}

// repository picks Postgres when connected, otherwise a JSON file store.
func repository[T any](c *Container, table record.Table) (record.Repository[T], error) {
	if c.DB != nil {
		return database.NewRepository[T](c.DB.Pool, table), nil
	}
	store, err := filestore.New[T](c.Config.Database.DataDir, table)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", table.FileName(), err)
	}
	return store, nil
}

func (c *Container) initServices() error {
	cfg := c.Config

	leads, err := repository[leadModel.Lead](c, leadModel.Table)
	if err != nil {
		return err
	}
	subscribers, err := repository[newsletterModel.Subscriber](c, newsletterModel.Table)
	if err != nil {
		return err
	}
	posts, err := repository[blogModel.Post](c, blogModel.Table)
	if err != nil {
		return err
	}
	postings, err := repository[careersModel.Posting](c, careersModel.PostingTable)
	if err != nil {
		return err
	}
	applications, err := repository[careersModel.Application](c, careersModel.ApplicationTable)
	if err != nil {
		return err
	}
	testimonials, err := repository[testimonialModel.Testimonial](c, testimonialModel.Table)
	if err != nil {
		return err
	}
	contactInfo, err := repository[contactInfoModel.Item](c, contactInfoModel.Table)
	if err != nil {
		return err
	}
	offerings, err := repository[offeringModel.Offering](c, offeringModel.Table)
	if err != nil {
		return err
	}
	team, err := repository[teamModel.Member](c, teamModel.Table)
	if err != nil {
		return err
	}

	c.LeadService = leadService.NewService(leads, c.Outbox, cfg.Email.NotifyEmail)

	var enqueuer newsletterService.Enqueuer
	if c.Queue != nil {
		enqueuer = c.Queue
	}
	c.NewsletterService = newsletterService.NewService(subscribers, c.Sender, c.Outbox, enqueuer)

	c.BlogService = blogService.NewService(posts)
	c.PostingService = careersService.NewPostingService(postings)
	c.ApplicationService = careersService.NewApplicationService(applications, c.PostingService, c.Storage, c.Outbox,
		careersService.ApplicationConfig{MaxFileBytes: cfg.Storage.MaxBytes, NotifyTo: cfg.Email.NotifyEmail})
	c.TestimonialService = testimonialService.NewService(testimonials, c.Storage, c.Images)

	c.ContactInfo = record.NewService[contactInfoModel.Item, *contactInfoModel.Item]("contact-info", contactInfo)
	c.Offerings = record.NewService[offeringModel.Offering, *offeringModel.Offering]("services", offerings)
	c.Team = record.NewService[teamModel.Member, *teamModel.Member]("team", team)

	var completer chatService.Completer
	if cfg.OpenAI.APIKey != "" {
		completer = chatService.NewOpenAICompleter(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Timeout)
	}
	c.ChatService = chatService.NewService(completer)

	c.DashboardService = dashboardService.NewService(c.Cache,
		dashboardService.CountOf(dashboardModel.QueryLeads, c.LeadService.Records()),
		dashboardService.CountOf(dashboardModel.QuerySubscribers, c.NewsletterService.Records()),
		dashboardService.CountOf(dashboardModel.QueryActiveSubscribers, c.NewsletterService.Records(), record.Eq("is_active", true)),
		dashboardService.CountOf(dashboardModel.QueryBlogPosts, c.BlogService.Records()),
		dashboardService.CountOf(dashboardModel.QueryPublishedPosts, c.BlogService.Records(), blogModel.PublicFilter),
		dashboardService.CountOf(dashboardModel.QueryJobs, c.PostingService.Records()),
		dashboardService.CountOf(dashboardModel.QueryActiveJobs, c.PostingService.Records(), careersModel.ActiveFilter),
		dashboardService.CountOf(dashboardModel.QueryTestimonials, c.TestimonialService.Records()),
		dashboardService.CountOf(dashboardModel.QueryApplications, c.ApplicationService.Records()),
		dashboardService.CountOf(dashboardModel.QueryPendingApplications, c.ApplicationService.Records(), record.Eq("status", careersModel.StatusPending)),
	)

	c.AuthService, err = adminService.NewAuthService(adminService.Credentials{
		Username:     cfg.Admin.Username,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
	}, c.JWTManager, c.Cache)
	if err != nil {
		return err
	}

	c.ExportService = adminService.NewExportService(map[string]adminService.Source{
		adminService.ResourceLeads:        adminService.SourceOf(c.LeadService.Records()),
		adminService.ResourceSubscribers:  adminService.SourceOf(c.NewsletterService.Records()),
		adminService.ResourceBlog:         adminService.SourceOf(c.BlogService.Records()),
		adminService.ResourceJobs:         adminService.SourceOf(c.PostingService.Records()),
		adminService.ResourceApplications: adminService.SourceOf(c.ApplicationService.Records()),
		adminService.ResourceTestimonials: adminService.SourceOf(c.TestimonialService.Records()),
		adminService.ResourceServices:     adminService.SourceOf(c.Offerings),
		adminService.ResourceTeam:         adminService.SourceOf(c.Team),
		adminService.ResourceContactInfo:  adminService.SourceOf(c.ContactInfo),
	})

	return nil
}

func (c *Container) initHandlers() {
	maxBytes := c.Config.Storage.MaxBytes

	c.LeadHandler = leadHandler.NewLeadHandler(c.LeadService)
	c.NewsletterHandler = newsletterHandler.NewNewsletterHandler(c.NewsletterService)
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService)
	c.JobHandler = careersHandler.NewJobHandler(c.PostingService)
	c.ApplicationHandler = careersHandler.NewApplicationHandler(c.ApplicationService, maxBytes)
	c.TestimonialHandler = testimonialHandler.NewTestimonialHandler(c.TestimonialService, maxBytes)
	c.ContactInfoHandler = record.NewHandler(c.ContactInfo, contactInfoModel.ActiveFilter)
	c.OfferingHandler = record.NewHandler(c.Offerings, offeringModel.ActiveFilter)
	c.TeamHandler = record.NewHandler(c.Team, teamModel.ActiveFilter)
	c.ChatHandler = chatHandler.NewChatHandler(c.ChatService)
	c.DashboardHandler = dashboardHandler.NewDashboardHandler(c.DashboardService)
	c.AdminHandler = adminHandler.NewAdminHandler(c.AuthService, c.ExportService)
}

// Ready pings every configured backend and reports per-component status.
func (c *Container) Ready(ctx context.Context) (map[string]string, bool) {
	checks := map[string]string{}
	ok := true

	if c.DB != nil {
		if err := c.DB.Ping(ctx); err != nil {
			checks["database"] = err.Error()
			ok = false
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "json-files"
	}

	if c.Redis != nil {
		if err := c.Redis.Ping(ctx); err != nil {
			checks["redis"] = err.Error()
			ok = false
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "disabled"
	}

	if p, isPinger := c.Storage.(interface{ Ping(context.Context) error }); isPinger {
		if err := p.Ping(ctx); err != nil {
			checks["storage"] = err.Error()
			ok = false
		} else {
			checks["storage"] = "ok"
		}
	}

	return checks, ok
}

// Cleanup releases connections on shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("cleaning up container resources")

	if c.stopMonitor != nil {
		c.stopMonitor()
	}
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close queue client")
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
