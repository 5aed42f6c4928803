package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/qalamlabs/qalam-backend/internal/types"
)

// writeMeta updates the lesson's descriptive fields. Absent payload fields
// keep their current values.
func (s *commitService) writeMeta(ctx context.Context, tx *gorm.DB, st *stepState, p *CommitPayload) error {
	updates := map[string]interface{}{}
	if v := firstStr(p.Title); v != "" {
		updates["title"] = v
	}
	if v := clean(p.TitleAr); v != nil {
		updates["title_ar"] = *v
	}
	if v := firstStr(p.LessonType); v != "" {
		updates["lesson_type"] = v
	}
	if v := clean(p.Subtype); v != nil {
		updates["subtype"] = *v
	}
	if v := clean(p.Source); v != nil {
		updates["source"] = *v
	}
	if v := firstStr(p.Status); v != "" {
		updates["status"] = v
	}
	if v := clampDifficulty(p.Difficulty); v != nil {
		updates["difficulty"] = *v
	}
	if p.LessonJSON != nil {
		updates["lesson_json"] = toJSON(p.LessonJSON)
	}
	if len(updates) == 0 {
		return nil
	}
	return s.lessons.Update(ctx, tx, st.lesson.ID, updates)
}

// writeContainer upserts the container and repoints the step at it. The id
// precedence is: explicit id on the container object, then the already
// resolved active container, then "C:<TYPE>:<KEY>".
func (s *commitService) writeContainer(ctx context.Context, tx *gorm.DB, st *stepState, p *CommitPayload) error {
	nested := p.Container
	if nested == nil {
		nested = &ContainerInput{}
	}
	cType := firstStr(nested.ContainerType, p.ContainerType)
	cKey := firstStr(nested.ContainerKey, p.ContainerKey)

	id := firstStr(nested.ID, nested.ContainerID)
	if id == "" {
		id = st.containerID
	}
	if id == "" {
		id = fmt.Sprintf("C:%s:%s", strings.ToUpper(cType), strings.ToUpper(cKey))
	}

	meta := nested.MetaJSON
	if len(meta) == 0 {
		meta = p.MetaJSON
	}
	container := &types.Container{
		ID:            id,
		ContainerType: cType,
		ContainerKey:  cKey,
		Title:         clean(nested.Title),
		MetaJSON:      rawJSON(meta),
	}
	if container.Title == nil {
		container.Title = clean(p.Title)
	}
	if err := s.containers.Upsert(ctx, tx, container); err != nil {
		return err
	}
	st.bump("ar_containers", 1)
	st.containerID = id
	return nil
}

// writeUnits upserts the container's units and the lesson-unit links. When
// the payload carries no explicit links array, one "unit" scope link is
// written per unit.
func (s *commitService) writeUnits(ctx context.Context, tx *gorm.DB, st *stepState, p *CommitPayload) error {
	type written struct {
		id         string
		unitType   string
		orderIndex int
	}
	var writtenUnits []written

	for i, u := range p.Units {
		unitType := firstStr(u.UnitType)
		if unitType == "" {
			unitType = "ayah"
		}
		orderIndex := intOr(u.OrderIndex, i)
		id := firstStr(u.ID, u.UnitID, u.StartRef)
		if id == "" {
			id = fmt.Sprintf("%s:unit:%d", st.containerID, orderIndex)
		}
		unit := &types.ContainerUnit{
			ID:          id,
			ContainerID: st.containerID,
			UnitType:    unitType,
			OrderIndex:  orderIndex,
			AyahFrom:    u.AyahFrom,
			AyahTo:      u.AyahTo,
			StartRef:    clean(u.StartRef),
			EndRef:      clean(u.EndRef),
			TextCache:   clean(u.TextCache),
			MetaJSON:    rawJSON(u.MetaJSON),
		}
		if err := s.units.Upsert(ctx, tx, unit); err != nil {
			return err
		}
		st.bump("ar_container_units", 1)
		writtenUnits = append(writtenUnits, written{id: id, unitType: unitType, orderIndex: orderIndex})
	}

	if len(p.Links) > 0 {
		for i, l := range p.Links {
			scope := firstStr(l.LinkScope)
			if scope == "" {
				scope = "unit"
			}
			// Container-scope links carry no unit; any other scope
			// without one has nothing to point at.
			unitID := firstStr(l.UnitID)
			if scope == "container" {
				unitID = ""
			} else if unitID == "" {
				st.warnf("links[%d]: missing unit_id for scope %q, skipped", i, scope)
				continue
			}
			link := &types.LessonUnitLink{
				LessonID:    st.lesson.ID,
				ContainerID: st.containerID,
				LinkScope:   scope,
				UnitID:      unitID,
				OrderIndex:  intOr(l.OrderIndex, i),
				Role:        clean(l.Role),
				Note:        clean(l.Note),
				LinkJSON:    rawJSON(l.LinkJSON),
			}
			if err := s.units.UpsertLessonLink(ctx, tx, link); err != nil {
				return err
			}
			st.bump("ar_lesson_unit_link", 1)
		}
		return nil
	}

	for _, w := range writtenUnits {
		link := &types.LessonUnitLink{
			LessonID:    st.lesson.ID,
			ContainerID: st.containerID,
			LinkScope:   "unit",
			UnitID:      w.id,
			OrderIndex:  w.orderIndex,
			Role:        strPtr(w.unitType),
		}
		if err := s.units.UpsertLessonLink(ctx, tx, link); err != nil {
			return err
		}
		st.bump("ar_lesson_unit_link", 1)
	}
	return nil
}
