package cache

import (
	"sort"

	"github.com/diamondburned/arikawa/v3/discord"
)

// Message is the cached snapshot of a message: enough to describe it after
// the original is deleted, nothing more.
type Message struct {
	ID              discord.MessageID
	ChannelID       discord.ChannelID
	GuildID         discord.GuildID
	Author          discord.User
	Content         string
	Timestamp       discord.Timestamp
	EditedTimestamp discord.Timestamp
}

// messageLog is a per-channel message history, ordered by ID and bounded at
// max entries with the oldest evicted first. It is only ever touched while
// holding the messages map's lock.
type messageLog struct {
	max  int
	ids  []discord.MessageID // ascending
	byID map[discord.MessageID]*Message
}

func (l *messageLog) insert(m *Message) {
	if _, ok := l.byID[m.ID]; ok {
		l.byID[m.ID] = m
		return
	}

	i := sort.Search(len(l.ids), func(i int) bool { return l.ids[i] >= m.ID })
	l.ids = append(l.ids, 0)
	copy(l.ids[i+1:], l.ids[i:])
	l.ids[i] = m.ID
	l.byID[m.ID] = m

	for len(l.ids) > l.max {
		delete(l.byID, l.ids[0])
		l.ids = l.ids[1:]
	}
}

func (l *messageLog) remove(id discord.MessageID) {
	if _, ok := l.byID[id]; !ok {
		return
	}
	delete(l.byID, id)

	i := sort.Search(len(l.ids), func(i int) bool { return l.ids[i] >= id })
	if i < len(l.ids) && l.ids[i] == id {
		l.ids = append(l.ids[:i], l.ids[i+1:]...)
	}
}

func newMessage(msg discord.Message) *Message {
	return &Message{
		ID:              msg.ID,
		ChannelID:       msg.ChannelID,
		GuildID:         msg.GuildID,
		Author:          msg.Author,
		Content:         msg.Content,
		Timestamp:       msg.Timestamp,
		EditedTimestamp: msg.EditedTimestamp,
	}
}

// Message gets a message by channel and message ID.
func (c *Cache) Message(channelID discord.ChannelID, id discord.MessageID) (*Message, bool) {
	var out *Message

	c.messages.ReadFunc(func(raw map[discord.ChannelID]*messageLog) {
		if l, ok := raw[channelID]; ok {
			out = l.byID[id]
		}
	})

	return out, out != nil
}

// ChannelMessages returns the cached message IDs for a channel in ascending
// order.
func (c *Cache) ChannelMessages(channelID discord.ChannelID) []discord.MessageID {
	var out []discord.MessageID

	c.messages.ReadFunc(func(raw map[discord.ChannelID]*messageLog) {
		if l, ok := raw[channelID]; ok {
			out = make([]discord.MessageID, len(l.ids))
			copy(out, l.ids)
		}
	})

	return out
}

func (c *Cache) cacheMessage(msg discord.Message) *Message {
	cached := newMessage(msg)

	c.messages.WriteFunc(func(raw map[discord.ChannelID]*messageLog) {
		l, ok := raw[msg.ChannelID]
		if !ok {
			l = &messageLog{
				max:  c.cfg.MaxMessages,
				byID: make(map[discord.MessageID]*Message),
			}
			raw[msg.ChannelID] = l
		}
		l.insert(cached)
	})

	return cached
}

// cacheMessageUpdate patches a cached message in place-by-replacement. An
// update for a message that was never cached is dropped: the payload is
// partial and can't seed a full snapshot.
func (c *Cache) cacheMessageUpdate(msg discord.Message) {
	c.messages.WriteFunc(func(raw map[discord.ChannelID]*messageLog) {
		l, ok := raw[msg.ChannelID]
		if !ok {
			return
		}
		cur, ok := l.byID[msg.ID]
		if !ok {
			return
		}

		updated := *cur
		if msg.Content != "" {
			updated.Content = msg.Content
		}
		updated.EditedTimestamp = msg.EditedTimestamp
		l.byID[msg.ID] = &updated
	})
}

func (c *Cache) removeMessages(channelID discord.ChannelID, ids ...discord.MessageID) {
	c.messages.WriteFunc(func(raw map[discord.ChannelID]*messageLog) {
		l, ok := raw[channelID]
		if !ok {
			return
		}

		for _, id := range ids {
			l.remove(id)
		}
		if len(l.ids) == 0 {
			delete(raw, channelID)
		}
	})
}
