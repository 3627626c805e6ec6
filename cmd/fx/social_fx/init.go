package social_fx

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"

	"constellation/internal/api/controllers"
	"constellation/internal/services"
	"constellation/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(
		services.NewLogSocialPublisher,
		services.NewSocialPostService,
		controllers.NewSocialController,
	),
	fx.Invoke(registerPublisherSweep),
)

// registerPublisherSweep delivers due scheduled posts once a minute for
// the lifetime of the app.
func registerPublisherSweep(lc fx.Lifecycle, socialService services.SocialPostService) {
	c := cron.New()
	_, err := c.AddFunc("@every 1m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := socialService.PublishDuePosts(ctx)
		if err != nil {
			utils.Logger.Errorf("publisher sweep: %v", err)
			return
		}
		if n > 0 {
			utils.Logger.Infof("publisher sweep: processed %d posts", n)
		}
	})
	if err != nil {
		utils.Logger.Fatalf("register publisher sweep: %v", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			<-c.Stop().Done()
			return nil
		},
	})
}
