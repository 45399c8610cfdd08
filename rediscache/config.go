package rediscache

import (
	"context"
	"encoding/json"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/mediocregopher/radix/v4"
)

// GuildConfig is implemented by every per-guild configuration record type.
// ConfigSubkey returns the record's hash field discriminator; every type in
// the registry must return a distinct byte, and the assignments are part of
// the wire contract.
type GuildConfig interface {
	ConfigSubkey() byte
}

// AutoConfig holds automatic-response settings.
type AutoConfig struct {
	Responses map[string]string `json:"responses,omitempty"`
}

// ModerationConfig holds moderation settings.
type ModerationConfig struct {
	MuteRoleID        discord.RoleID `json:"mute_role_id,omitempty"`
	DeleteMessageDays int            `json:"delete_message_days,omitempty"`
}

// LoggingConfig holds event-log routing.
type LoggingConfig struct {
	ModlogChannelID     discord.ChannelID `json:"modlog_channel_id,omitempty"`
	MessageLogChannelID discord.ChannelID `json:"message_log_channel_id,omitempty"`
	LogDeletedMessages  bool              `json:"log_deleted_messages,omitempty"`
}

// ValidationConfig holds member validation settings.
type ValidationConfig struct {
	Enabled          bool           `json:"enabled,omitempty"`
	ValidationRoleID discord.RoleID `json:"validation_role_id,omitempty"`
	KickAfterDays    int            `json:"kick_after_days,omitempty"`
}

// MusicConfig holds music playback settings.
type MusicConfig struct {
	VoiceChannelID discord.ChannelID `json:"voice_channel_id,omitempty"`
	TextChannelID  discord.ChannelID `json:"text_channel_id,omitempty"`
	Volume         int               `json:"volume,omitempty"`
}

// AnnouncementConfig holds join/leave/ban announcement routing.
type AnnouncementConfig struct {
	JoinChannelID  discord.ChannelID `json:"join_channel_id,omitempty"`
	LeaveChannelID discord.ChannelID `json:"leave_channel_id,omitempty"`
	BanChannelID   discord.ChannelID `json:"ban_channel_id,omitempty"`
}

// RoleConfig holds self-serve role settings.
type RoleConfig struct {
	SelfServeRoleIDs []discord.RoleID `json:"self_serve_role_ids,omitempty"`
}

func (AutoConfig) ConfigSubkey() byte         { return 0 }
func (ModerationConfig) ConfigSubkey() byte   { return 1 }
func (LoggingConfig) ConfigSubkey() byte      { return 2 }
func (ValidationConfig) ConfigSubkey() byte   { return 3 }
func (MusicConfig) ConfigSubkey() byte        { return 4 }
func (AnnouncementConfig) ConfigSubkey() byte { return 5 }
func (RoleConfig) ConfigSubkey() byte         { return 6 }

// guildConfigs is the closed registry of config record types. Sub-key
// uniqueness is checked by tests.
var guildConfigs = []GuildConfig{
	AutoConfig{},
	ModerationConfig{},
	LoggingConfig{},
	ValidationConfig{},
	MusicConfig{},
	AnnouncementConfig{},
	RoleConfig{},
}

func configCacheKey(key string, subkey byte) string {
	return key + string([]byte{subkey})
}

// GuildConfig reads the guild's config record of cfg's type into cfg, which
// must be a pointer. A record that was never written leaves cfg untouched:
// "no config yet" is a normal state, and the zero value is the default.
func (s *Store) GuildConfig(ctx context.Context, guildID discord.GuildID, cfg GuildConfig) error {
	key := Key(PrefixGuildConfigs, uint64(guildID))
	subkey := cfg.ConfigSubkey()

	raw, err := s.configPayload(ctx, key, subkey)
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	dec, err := decompress(raw)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(dec, cfg); err != nil {
		return errors.Wrap(err, "unmarshaling config")
	}
	return nil
}

func (s *Store) configPayload(ctx context.Context, key string, subkey byte) ([]byte, error) {
	cacheKey := configCacheKey(key, subkey)
	if v, err := s.configs.Get(cacheKey); err == nil {
		return v.([]byte), nil
	}

	var raw []byte
	err := s.client.Do(ctx, radix.Cmd(&raw, "HGET", key, string([]byte{subkey})))
	if err != nil {
		return nil, errors.Wrap(err, "getting config")
	}
	if raw == nil {
		return nil, nil
	}

	s.configs.Set(cacheKey, raw)
	return raw, nil
}

// SetGuildConfig writes the guild's config record of cfg's type. Configs
// are durable: no TTL is applied.
func (s *Store) SetGuildConfig(ctx context.Context, guildID discord.GuildID, cfg GuildConfig) error {
	enc, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	compressed, err := compress(enc)
	if err != nil {
		return err
	}

	key := Key(PrefixGuildConfigs, uint64(guildID))
	subkey := cfg.ConfigSubkey()

	err = s.client.Do(ctx, radix.Cmd(nil, "HSET", key, string([]byte{subkey}), string(compressed)))
	if err != nil {
		return errors.Wrap(err, "setting config")
	}

	s.configs.Set(configCacheKey(key, subkey), compressed)
	return nil
}
