package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AwardEvent records a single XP award: either a one-time source grant
// or a lesson completion bonus.
type AwardEvent struct {
	ent.Schema
}

func (AwardEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AwardEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("kind").NotEmpty(),
		field.String("source_key").NotEmpty(),
		field.Int("amount").Positive(),
		field.Int("xp_after").NonNegative(),
		field.String("session_id").NotEmpty(),
	}
}

func (AwardEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("kind"),
		index.Fields("source_key"),
		index.Fields("session_id"),
	}
}
