package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jwebster45206/wayfarer/pkg/actor"
	"github.com/jwebster45206/wayfarer/pkg/chat"
	"github.com/jwebster45206/wayfarer/pkg/scenario"
)

// MemoryWindow is how many of the most recent memory entries a prompt carries.
const MemoryWindow = 3

// ReplyInstruction closes a dialogue prompt. %[1]s is the speaker, %[2]s the
// counterpart.
const ReplyInstruction = "Reply in character as %[1]s with one or two short sentences of dialogue. Do not speak or act for %[2]s. Do not describe yourself as an AI."

// SummaryInstruction asks for a memory entry. It never carries persona text.
const SummaryInstruction = `You are a memory keeper for a text adventure. Summarize the conversation below from the point of view of %s in a single short paragraph of no more than 100 words. Keep names, promises, and facts learned. Do not add anything that did not happen. Output only the summary.`

// WorldInstruction asks the narrator to expand a one-line world description.
const WorldInstruction = "Generate a more detailed description of a world described as: %s. Include details about the environment, atmosphere, and any notable features."

// DialoguePrompt renders the single-shot prompt: persona, situation, memory,
// the conversation so far, the new utterance, and a reply instruction.
// Memory may be passed in full; only the last MemoryWindow entries are used.
func DialoguePrompt(speaker, counterpart *actor.Character, location string, memory []actor.MemoryEntry, transcript []chat.ChatMessage, utterance string) string {
	if speaker == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(strings.Join(personaLines(speaker, counterpart, location, memory), "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(TurnPrompt(speaker, counterpart, transcript, utterance))
	sb.WriteString("\n\n")
	sb.WriteString(replyInstruction(speaker, counterpart))
	return sb.String()
}

// PersonaBlock renders the same persona and memory as DialoguePrompt as a
// standalone system instruction, to be paired with TurnPrompt.
func PersonaBlock(speaker, counterpart *actor.Character, location string, memory []actor.MemoryEntry) string {
	if speaker == nil {
		return ""
	}
	return strings.Join(personaLines(speaker, counterpart, location, memory), "\n") +
		"\n\n" + replyInstruction(speaker, counterpart)
}

// TurnPrompt renders the conversation so far followed by the new utterance.
func TurnPrompt(speaker, counterpart *actor.Character, transcript []chat.ChatMessage, utterance string) string {
	you, them := "You", "Stranger"
	if speaker != nil {
		you = speaker.Name
	}
	if counterpart != nil {
		them = counterpart.Name
	}

	var sb strings.Builder
	if len(transcript) > 0 {
		sb.WriteString("Conversation so far:\n")
		for _, m := range transcript {
			who := them
			if m.Role == chat.ChatRoleAgent {
				who = you
			}
			fmt.Fprintf(&sb, "%s: %s\n", who, m.Content)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "%s: %s", them, strings.TrimSpace(utterance))
	return sb.String()
}

// SummaryPrompt renders the summarization request for one finished
// interaction as a flattened role: content log.
func SummaryPrompt(characterName string, transcript []chat.ChatMessage) string {
	return fmt.Sprintf(SummaryInstruction, characterName) + "\n\nConversation:\n" + chat.Flatten(transcript)
}

// WorldPrompt renders the narrator's world-description request. voice may be nil.
func WorldPrompt(description string, voice *scenario.Narrator) string {
	if strings.TrimSpace(description) == "" {
		description = scenario.DefaultWorldDescription
	}
	prompt := fmt.Sprintf(WorldInstruction, strings.TrimSuffix(strings.TrimSpace(description), "."))
	if voice == nil {
		return prompt
	}
	if voice.Name != "" {
		prompt += "\n\nNarrate as " + voice.Name + "."
	}
	if style := voice.GetPromptsAsString(); style != "" {
		prompt += "\nStyle guidelines:\n" + style
	}
	return prompt
}

func replyInstruction(speaker, counterpart *actor.Character) string {
	them := "the other person"
	if counterpart != nil {
		them = counterpart.Name
	}
	return fmt.Sprintf(ReplyInstruction, speaker.Name, them)
}

// personaLines is shared by both prompt shapes. Absent traits are left out.
func personaLines(speaker, counterpart *actor.Character, location string, memory []actor.MemoryEntry) []string {
	lines := []string{fmt.Sprintf("You are %s.", speaker.Name)}
	add := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			lines = append(lines, label+": "+v)
		}
	}
	add("Age", speaker.Age)
	add("Height", speaker.Height)
	add("Appearance", speaker.Appearance)
	add("Personality", speaker.Personality)
	add("Interests", speaker.Interests)
	add("Habits", speaker.Habits)
	add("Backstory", speaker.Backstory)

	if len(speaker.Relationships) > 0 {
		names := make([]string, 0, len(speaker.Relationships))
		for name := range speaker.Relationships {
			names = append(names, name)
		}
		sort.Strings(names)
		var rels []string
		for _, name := range names {
			if rel := strings.TrimSpace(speaker.Relationships[name]); rel != "" {
				rels = append(rels, "- "+name+": "+rel)
			}
		}
		if len(rels) > 0 {
			lines = append(lines, "Relationships:")
			lines = append(lines, rels...)
		}
	}

	if location != "" {
		lines = append(lines, fmt.Sprintf("You are currently in the %s.", location))
	}

	if counterpart != nil {
		lines = append(lines, fmt.Sprintf("You are talking with %s.", counterpart.Name))
		if rel, ok := speaker.RelationTo(counterpart.Name); ok {
			lines = append(lines, fmt.Sprintf("%s is your %s.", counterpart.Name, rel))
		}
		if a := strings.TrimSpace(counterpart.Appearance); a != "" {
			lines = append(lines, fmt.Sprintf("%s looks like this: %s", counterpart.Name, a))
		}
	}

	recent := actor.LastN(memory, MemoryWindow)
	if len(recent) > 0 {
		lines = append(lines, "Things you remember:")
		for _, m := range recent {
			lines = append(lines, "- "+m.Content)
		}
	}
	return lines
}
