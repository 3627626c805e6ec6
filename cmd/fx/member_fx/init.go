package member_fx

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
		services.NewMemberService,
		controllers.NewMemberController,
	),
	fx.Invoke(registerStaleSweep),
)

// registerStaleSweep runs the hourly cancellation of day-old pending
// enrollments for the lifetime of the app.
func registerStaleSweep(lc fx.Lifecycle, memberService services.MemberService) {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		n, err := memberService.CancelStaleEnrollments(ctx)
		if err != nil {
			utils.Logger.Errorf("stale enrollment sweep: %v", err)
			return
		}
		if n > 0 {
			utils.Logger.Infof("stale enrollment sweep: canceled %d enrollments", n)
		}
	})
	if err != nil {
		utils.Logger.Fatalf("register stale enrollment sweep: %v", err)
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
