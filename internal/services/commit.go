package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qalamlabs/qalam-backend/internal/platform/apierr"
	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/repos"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

// CommitService ingests one lesson annotation step at a time into the shared
// dictionary and occurrence tables. Steps are independent requests; the
// client drives sequencing and the service enforces only that referenced
// containers/units already exist.
type CommitService interface {
	CommitStep(ctx context.Context, userID uuid.UUID, lessonID int64, req *CommitRequest) (*CommitResult, error)
}

type commitService struct {
	db          *gorm.DB
	log         *logger.Logger
	lessons     repos.LessonRepo
	containers  repos.ContainerRepo
	units       repos.UnitRepo
	roots       repos.RootRepo
	tokens      repos.TokenRepo
	spans       repos.SpanRepo
	sentences   repos.SentenceRepo
	grammar     repos.GrammarRepo
	expressions repos.ExpressionRepo
	lemmas      repos.LemmaRepo
	links       repos.LinkRepo
}

func NewCommitService(
	db *gorm.DB,
	baseLog *logger.Logger,
	lessons repos.LessonRepo,
	containers repos.ContainerRepo,
	units repos.UnitRepo,
	roots repos.RootRepo,
	tokens repos.TokenRepo,
	spans repos.SpanRepo,
	sentences repos.SentenceRepo,
	grammar repos.GrammarRepo,
	expressions repos.ExpressionRepo,
	lemmas repos.LemmaRepo,
	links repos.LinkRepo,
) CommitService {
	return &commitService{
		db:          db,
		log:         baseLog.With("service", "CommitService"),
		lessons:     lessons,
		containers:  containers,
		units:       units,
		roots:       roots,
		tokens:      tokens,
		spans:       spans,
		sentences:   sentences,
		grammar:     grammar,
		expressions: expressions,
		lemmas:      lemmas,
		links:       links,
	}
}

// stepState carries the per-request scratch state every writer shares:
// the resolved container/unit, the per-table write counts and the warnings
// collected for skipped rows.
type stepState struct {
	userID      uuid.UUID
	lesson      *types.Lesson
	containerID string
	unitID      string
	counts      map[string]int
	warnings    []string
}

func (st *stepState) bump(table string, n int) {
	st.counts[table] += n
}

func (st *stepState) warnf(format string, args ...interface{}) {
	st.warnings = append(st.warnings, fmt.Sprintf(format, args...))
}

func (st *stepState) unitPtr() *string {
	if st.unitID == "" {
		return nil
	}
	v := st.unitID
	return &v
}

func (st *stepState) containerPtr() *string {
	if st.containerID == "" {
		return nil
	}
	v := st.containerID
	return &v
}

func (s *commitService) CommitStep(ctx context.Context, userID uuid.UUID, lessonID int64, req *CommitRequest) (*CommitResult, error) {
	if req == nil {
		req = &CommitRequest{}
	}
	step := strings.ToLower(strings.TrimSpace(req.Step))
	payload := req.Payload
	if payload == nil {
		payload = &CommitPayload{}
	}

	lesson, err := s.lessons.GetForUser(ctx, nil, lessonID, userID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, apierr.NotFound("lesson %d not found", lessonID)
	}

	st := &stepState{
		userID: userID,
		lesson: lesson,
		counts: map[string]int{},
	}
	// Active container/unit: explicit request field, then payload field,
	// then the lesson's stored pointer.
	st.containerID = firstStr(req.ContainerID, req.ContainerIDAlt, payload.ContainerID, lesson.ContainerID)
	st.unitID = firstStr(req.UnitID, req.UnitIDAlt, payload.UnitID, lesson.UnitID)

	if err := validateStep(step, payload, st.containerID); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, step, st); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var werr error
		switch step {
		case "meta":
			werr = s.writeMeta(ctx, tx, st, payload)
		case "container":
			werr = s.writeContainer(ctx, tx, st, payload)
		case "units":
			werr = s.writeUnits(ctx, tx, st, payload)
		case "lemmas":
			werr = s.writeLemmas(ctx, tx, st, payload.Lemmas)
		case "tokens":
			werr = s.writeTokens(ctx, tx, st, payload)
		case "spans":
			werr = s.writeSpans(ctx, tx, st, payload)
		case "grammar":
			werr = s.writeGrammar(ctx, tx, st, payload)
		case "sentences":
			werr = s.writeSentences(ctx, tx, st, payload)
		case "expressions":
			werr = s.writeExpressions(ctx, tx, st, payload)
		case "links":
			werr = s.writeLinks(ctx, tx, st, payload)
		}
		if werr != nil {
			return werr
		}
		return s.touchLesson(ctx, tx, st)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("commit step applied",
		"lesson_id", lessonID,
		"step", step,
		"container_id", st.containerID,
		"counts", st.counts)

	return &CommitResult{
		LessonID:    lesson.ID,
		Step:        step,
		ContainerID: st.containerPtr(),
		UnitID:      st.unitPtr(),
		Counts:      st.counts,
		Warnings:    st.warnings,
	}, nil
}

// checkReferences verifies the resolved container/unit exist before any
// write, except for the steps that create them.
func (s *commitService) checkReferences(ctx context.Context, step string, st *stepState) error {
	if st.containerID != "" && step != "container" {
		ok, err := s.containers.Exists(ctx, nil, st.containerID)
		if err != nil {
			return err
		}
		if !ok {
			return apierr.BadRequest("container %s not found", st.containerID)
		}
	}
	if st.unitID != "" && st.containerID != "" && step != "container" && step != "units" {
		ok, err := s.units.ExistsInContainer(ctx, nil, st.unitID, st.containerID)
		if err != nil {
			return err
		}
		if !ok {
			return apierr.BadRequest("unit %s not found in container %s", st.unitID, st.containerID)
		}
	}
	return nil
}

// touchLesson advances the lesson's stored container/unit pointers to the
// values this step resolved and bumps its updated_at. Runs at the end of
// every step.
func (s *commitService) touchLesson(ctx context.Context, tx *gorm.DB, st *stepState) error {
	if err := s.lessons.AdvancePointers(ctx, tx, st.lesson.ID, st.containerPtr(), st.unitPtr()); err != nil {
		return err
	}
	st.bump("ar_lessons", 1)
	return nil
}
