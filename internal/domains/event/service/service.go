package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"stillhouse/config"
	"stillhouse/infras/briefing"
	"stillhouse/infras/calendarhook"
	"stillhouse/infras/kafka"
	"stillhouse/infras/metrics"
	"stillhouse/infras/otel"
	"stillhouse/internal/domains/event/model"
	"stillhouse/internal/domains/event/model/dto"
	"stillhouse/internal/domains/event/pricing"
	"stillhouse/internal/domains/event/report"
	"stillhouse/internal/domains/event/repository"
	"stillhouse/shared"
	"stillhouse/shared/cache"
	"stillhouse/shared/constant"
	gDto "stillhouse/shared/dto"
	"stillhouse/shared/failure"
	"stillhouse/shared/timewindow"
	"stillhouse/shared/timezone"
)

const (
	cacheGetEvent     = "event:get"
	cacheGetAllEvent  = "event:gets"
	cacheCountEvent   = "event:count"
	cacheStatsEvent   = "event:stats"
	cacheRevenueEvent = "event:revenue"
)

// Kafka lifecycle message keys.
const (
	msgEventCreated        = "event.created"
	msgEventUpdated        = "event.updated"
	msgEventDeleted        = "event.deleted"
	msgEventCalendarPushed = "event.calendar_pushed"
)

type Event interface {
	Create(ctx context.Context, req dto.CreateEventRequest) (dto.EventResponse, error)
	CreateInquiry(ctx context.Context, req dto.InquiryRequest) (dto.EventResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, mode string) (dto.GetEventsResponse, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.EventResponse, error)
	Update(ctx context.Context, req dto.UpdateEventRequest, id string) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (dto.StatsResponse, error)
	Revenue(ctx context.Context) (dto.RevenueResponse, error)
	Estimate(ctx context.Context, req dto.EstimateRequest) dto.EstimateResponse
	Sheet(ctx context.Context, id string) (dto.SheetResponse, error)
	PushToCalendar(ctx context.Context, id string) (dto.CalendarPushResponse, error)
	Briefing(ctx context.Context, id string) (dto.BriefingResponse, error)
}

type serviceImpl struct {
	repo     repository.Event
	cfg      *config.Config
	cache    cache.RedisCache
	kafka    kafka.Client
	metrics  *metrics.Metrics
	calendar calendarhook.Pusher
	briefing briefing.Generator
	otel     otel.Otel
}

func New(
	repo repository.Event,
	cfg *config.Config,
	cache cache.RedisCache,
	kafkaClient kafka.Client,
	m *metrics.Metrics,
	calendar calendarhook.Pusher,
	briefingGen briefing.Generator,
	otel otel.Otel,
) Event {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		kafka:    kafkaClient,
		metrics:  m,
		calendar: calendar,
		briefing: briefingGen,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEventRequest) (res dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	event := req.ToModel(user)

	if err = s.repo.Insert(ctx, event); err != nil {
		log.Error().Err(err).Msg("failed to create event")

		return res, fmt.Errorf("failed to create event: %w", err)
	}

	s.afterWrite(ctx, event, msgEventCreated, metrics.OriginAdmin)

	res.FromModel(event)

	return res, nil
}

func (s *serviceImpl) CreateInquiry(ctx context.Context, req dto.InquiryRequest) (res dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateInquiry")
	defer scope.End()
	defer scope.TraceIfError(err)

	event := req.ToModel()

	if err = s.repo.Insert(ctx, event); err != nil {
		log.Error().Err(err).Msg("failed to create inquiry")

		return res, fmt.Errorf("failed to create inquiry: %w", err)
	}

	s.afterWrite(ctx, event, msgEventCreated, metrics.OriginInquiry)

	res.FromModel(event)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, mode string) (res dto.GetEventsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllEvent, mode), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for events")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get events")

		return res, fmt.Errorf("failed to get events: %w", err)
	}

	view := report.FilterAndSort(models, mode)

	total := len(view)

	// the dashboard views filter in memory, so only the full view can
	// trust the store's count for pagination
	if mode == "" || mode == report.ModeAll {
		total, err = s.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count events")

			return res, fmt.Errorf("failed to count events: %w", err)
		}
	}

	res.FromModels(view, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save events to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountEvent, gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count events")

		return res, fmt.Errorf("failed to count events: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetEvent, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event")

		return res, nil
	}

	event, err := s.getEvent(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(event)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateEventRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if event exists")

		return fmt.Errorf("failed to check if event exists: %w", err)
	}

	if !exist {
		log.Error().Msg("event not found")

		return failure.NotFound("event not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update event")

		return fmt.Errorf("failed to update event: %w", err)
	}

	s.metrics.EventsUpdated.Inc()
	s.invalidateEvent(ctx, id)
	s.publish(ctx, msgEventUpdated, map[string]any{"id": id, "fields": updatedFields})

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if event exists")

		return fmt.Errorf("failed to check if event exists: %w", err)
	}

	if !exist {
		log.Error().Msg("event not found")

		return failure.NotFound("event not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete event")

		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.metrics.EventsDeleted.Inc()
	s.invalidateEvent(ctx, id)
	s.publish(ctx, msgEventDeleted, map[string]any{"id": id})

	return nil
}

func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheStatsEvent, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheStatsEvent).Msg("cache hit for event stats")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get events for stats")

		return res, fmt.Errorf("failed to get events for stats: %w", err)
	}

	res.Stats = report.ComputeStats(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheStatsEvent, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event stats to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Revenue(ctx context.Context) (res dto.RevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Revenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheRevenueEvent, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheRevenueEvent).Msg("cache hit for event revenue")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get events for revenue")

		return res, fmt.Errorf("failed to get events for revenue: %w", err)
	}

	res.RevenueSummary = report.SummarizeRevenue(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheRevenueEvent, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event revenue to cache")
		}
	}()

	return res, nil
}

// Estimate is pure arithmetic over the draft; it never touches a
// stored booking.
func (s *serviceImpl) Estimate(ctx context.Context, req dto.EstimateRequest) dto.EstimateResponse {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Estimate")
	defer scope.End()

	return dto.EstimateResponse{Estimate: pricing.Suggest(req.ToModel())}
}

func (s *serviceImpl) Sheet(ctx context.Context, id string) (res dto.SheetResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sheet")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := s.getEvent(ctx, id)
	if err != nil {
		return res, err
	}

	res = buildSheet(event)

	// the briefing is a nice-to-have on a printed sheet; the sheet still
	// renders when the generator is down or unconfigured
	if text, briefErr := s.briefing.Generate(ctx, briefingInput(event)); briefErr == nil {
		res.Briefing = text
	} else {
		log.Warn().Err(briefErr).Str("eventID", id).Msg("sheet rendered without briefing")
	}

	return res, nil
}

func (s *serviceImpl) PushToCalendar(ctx context.Context, id string) (res dto.CalendarPushResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PushToCalendar")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := s.getEvent(ctx, id)
	if err != nil {
		return res, err
	}

	result, err := s.calendar.Push(ctx, calendarhook.Request{
		Title:       fmt.Sprintf("%s - %s %s", event.EventType, event.FirstName, event.LastName),
		Description: calendarDescription(event),
		Start:       calendarTimestamp(event.DateRequested, event.StartTime),
		End:         calendarTimestamp(event.DateRequested, event.EndTime),
		EventID:     event.ID,
		ClientEmail: event.Email,
		ClientPhone: event.Phone,
	})
	if err != nil {
		s.metrics.CalendarPushes.WithLabelValues(metrics.StatusError).Inc()
		log.Error().Err(err).Str("eventID", id).Msg("failed to push event to calendar")

		return res, failure.BadGateway("calendar push failed") // nolint:wrapcheck
	}

	s.metrics.CalendarPushes.WithLabelValues(metrics.StatusOK).Inc()

	pushedAt := timezone.ToAppTime(result.PushedAt)
	updatedFields := map[string]any{
		model.FieldPushedToCalendar: true,
		model.FieldCalendarPushedAt: pushedAt,
		model.FieldGoogleEventID:    result.GoogleEventID,
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Str("eventID", id).Msg("failed to persist calendar sync state")

		return res, fmt.Errorf("failed to persist calendar sync state: %w", err)
	}

	s.invalidateEvent(ctx, id)
	s.publish(ctx, msgEventCalendarPushed, map[string]any{"id": id, "google_event_id": result.GoogleEventID})

	res = dto.CalendarPushResponse{
		EventID:          id,
		GoogleEventID:    result.GoogleEventID,
		PushedToCalendar: true,
		CalendarPushedAt: timezone.Format(pushedAt, "2006-01-02T15:04:05Z07:00"),
	}

	return res, nil
}

func (s *serviceImpl) Briefing(ctx context.Context, id string) (res dto.BriefingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Briefing")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := s.getEvent(ctx, id)
	if err != nil {
		return res, err
	}

	text, err := s.briefing.Generate(ctx, briefingInput(event))
	if err != nil {
		s.metrics.BriefingsGenerated.WithLabelValues(metrics.StatusError).Inc()
		log.Error().Err(err).Str("eventID", id).Msg("failed to generate briefing")

		return res, failure.BadGateway("briefing generation failed") // nolint:wrapcheck
	}

	s.metrics.BriefingsGenerated.WithLabelValues(metrics.StatusOK).Inc()

	return dto.BriefingResponse{EventID: id, Briefing: text}, nil
}

func (s *serviceImpl) getEvent(ctx context.Context, id string) (model.Event, error) {
	event, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get event")

		return event, fmt.Errorf("failed to get event: %w", err)
	}

	if event.ID == constant.Empty {
		return event, failure.NotFound("event not found") // nolint:wrapcheck
	}

	return event, nil
}

// afterWrite handles the create-path side effects: cache invalidation,
// the lifecycle message, and the counter.
func (s *serviceImpl) afterWrite(ctx context.Context, event model.Event, key, origin string) {
	s.metrics.EventsCreated.WithLabelValues(origin).Inc()
	s.invalidateEvent(ctx, event.ID)
	s.publish(ctx, key, event)
}

func (s *serviceImpl) invalidateEvent(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetEvent, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete event from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllEvent)
		shared.InvalidateCaches(c, s.cache, cacheCountEvent)
		shared.InvalidateCaches(c, s.cache, cacheStatsEvent)
		shared.InvalidateCaches(c, s.cache, cacheRevenueEvent)
	}()
}

func (s *serviceImpl) publish(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic, kafka.Message{Key: key, Value: value})
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to publish event lifecycle message")
		}
	}()
}

func buildSheet(event model.Event) dto.SheetResponse {
	sheet := dto.SheetResponse{
		EventID:       event.ID,
		ClientName:    strings.TrimSpace(event.FirstName + " " + event.LastName),
		Email:         event.Email,
		Phone:         event.Phone,
		EventType:     event.EventType,
		DateStamp:     dateStamp(event.DateRequested),
		TimeWindow:    timewindow.Format(event.StartTime, event.EndTime),
		Guests:        event.Guests,
		BarService:    event.BarType,
		BarFeeNote:    "Svc Fee",
		HasFood:       event.HasFood,
		FacilityUsage: facilityUsage(event),
		TotalAmount:   event.TotalAmount,
		DepositAmount: event.DepositAmount,
		DepositPaid:   event.DepositPaid,
		BalancePaid:   event.BalancePaid,
		Notes:         event.Notes,
	}

	if !event.BeerWineOffered {
		sheet.BarFeeNote = "Uncork Fee"
		sheet.UncorkingFee = pricing.UncorkingFee
	}

	if event.HasFood {
		sheet.FoodSource = event.FoodSource
		sheet.FoodStyle = event.FoodServiceType
	}

	return sheet
}

func dateStamp(dateRequested string) string {
	parsed, err := timezone.Parse(constant.CalendarDate, strings.TrimSpace(dateRequested))
	if err != nil {
		return timewindow.Placeholder
	}

	return parsed.Format(constant.SheetDateStamp)
}

func facilityUsage(event model.Event) string {
	usage := []string{}

	if event.HasTour {
		usage = append(usage, "TOUR")
	}

	if event.HasTasting {
		usage = append(usage, "TASTING")
	}

	if len(usage) == 0 {
		return "Tasting room only"
	}

	return strings.Join(usage, " ")
}

func briefingInput(event model.Event) briefing.Input {
	input := briefing.Input{
		EventType: event.EventType,
		GuestName: strings.TrimSpace(event.FirstName + " " + event.LastName),
		Guests:    event.Guests,
		BarType:   event.BarType,
		Notes:     event.Notes,
	}

	if event.HasFood {
		input.FoodDetails = strings.TrimSpace(event.FoodSource + " " + event.FoodServiceType)
	} else {
		input.FoodDetails = "No food service"
	}

	return input
}

// calendarTimestamp renders a local wall-clock timestamp the webhook
// can hand straight to the calendar API. Either part may be missing on
// a draft; whatever is present still gets sent.
func calendarTimestamp(date, clock string) string {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	switch {
	case date == "":
		return clock
	case clock == "":
		return date
	}

	return date + "T" + clock + ":00"
}
