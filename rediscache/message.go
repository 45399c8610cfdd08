package rediscache

import (
	"context"
	"encoding/json"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/mediocregopher/radix/v4"
)

// CachedMessage is the slice of a message worth keeping around for deletion
// logs: enough to say who said what, where.
type CachedMessage struct {
	ID        discord.MessageID `json:"id"`
	ChannelID discord.ChannelID `json:"channel_id"`
	GuildID   discord.GuildID   `json:"guild_id,omitempty"`
	Content   string            `json:"content,omitempty"`
	Author    CachedAuthor      `json:"author"`
}

// CachedAuthor identifies a message's author.
type CachedAuthor struct {
	ID            discord.UserID `json:"id"`
	Username      string         `json:"username"`
	Discriminator string         `json:"discriminator,omitempty"`
}

// NewCachedMessage extracts the cached slice of a gateway message.
func NewCachedMessage(m *discord.Message) CachedMessage {
	return CachedMessage{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		Content:   m.Content,
		Author: CachedAuthor{
			ID:            m.Author.ID,
			Username:      m.Author.Username,
			Discriminator: m.Author.Discriminator,
		},
	}
}

// SetMessage stores the message under its (channel, message) key with the
// standard expiry. The SET and EXPIRE land atomically so a crash between
// them can't leave an immortal record.
func (s *Store) SetMessage(ctx context.Context, msg CachedMessage) error {
	enc, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshaling message")
	}

	compressed, err := compress(enc)
	if err != nil {
		return err
	}

	key := PairKey(PrefixMessages, uint64(msg.ChannelID), uint64(msg.ID))
	err = s.doAtomic(ctx,
		radix.Cmd(nil, "SET", key, string(compressed)),
		radix.Cmd(nil, "EXPIRE", key, expirySeconds),
	)
	return errors.Wrap(err, "storing message")
}

// Message fetches a cached message. ErrNotFound means the message was never
// cached or already expired.
func (s *Store) Message(ctx context.Context, channelID discord.ChannelID, messageID discord.MessageID) (CachedMessage, error) {
	key := PairKey(PrefixMessages, uint64(channelID), uint64(messageID))

	var raw []byte
	err := s.client.Do(ctx, radix.Cmd(&raw, "GET", key))
	if err != nil {
		return CachedMessage{}, errors.Wrap(err, "reading message")
	}
	if raw == nil {
		return CachedMessage{}, ErrNotFound
	}

	dec, err := decompress(raw)
	if err != nil {
		return CachedMessage{}, err
	}

	var msg CachedMessage
	if err := json.Unmarshal(dec, &msg); err != nil {
		return CachedMessage{}, errors.Wrap(err, "unmarshaling message")
	}
	return msg, nil
}

// DeleteMessage drops a single cached message.
func (s *Store) DeleteMessage(ctx context.Context, channelID discord.ChannelID, messageID discord.MessageID) error {
	return s.DeleteMessages(ctx, channelID, []discord.MessageID{messageID})
}

// DeleteMessages drops a batch of cached messages from one channel in a
// single DEL.
func (s *Store) DeleteMessages(ctx context.Context, channelID discord.ChannelID, messageIDs []discord.MessageID) error {
	if len(messageIDs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(messageIDs))
	for _, id := range messageIDs {
		keys = append(keys, PairKey(PrefixMessages, uint64(channelID), uint64(id)))
	}

	err := s.client.Do(ctx, radix.Cmd(nil, "DEL", keys...))
	return errors.Wrap(err, "deleting messages")
}
