// Copyright 2025 CoolAir Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dialog

import (
	"fmt"
	"strings"
)

// personaPreamble frames every generation request. It is intentionally a
// single assembled prompt rather than a chat message list so the same text
// works against any completion-style backend.
const personaPreamble = `You are Servantus, a friendly and knowledgeable assistant of the CoolAir Air Conditioner Store.
Answer the customer's question using only the knowledge base excerpts below and the dialog history.
Answer in the language the question is asked in.
Be concise, polite and helpful, and when appropriate gently guide the customer toward making a purchase.
If the knowledge base does not contain the answer, say so honestly instead of inventing one.`

const (
	historyHeading   = "[Dialog history]"
	knowledgeHeading = "[Knowledge base]"
)

// BuildPrompt assembles the full generation prompt: persona, optional
// dialog history, optional knowledge base snippet, then the question.
// Empty history and an empty snippet each drop their section entirely.
func BuildPrompt(question string, history []Pair, knowledge string) string {
	var b strings.Builder
	b.WriteString(personaPreamble)

	if len(history) > 0 {
		b.WriteString("\n\n")
		b.WriteString(historyHeading)
		for _, pair := range history {
			fmt.Fprintf(&b, "\nCustomer: %s\nServantus: %s", pair.Question, pair.Answer)
		}
	}

	if strings.TrimSpace(knowledge) != "" {
		b.WriteString("\n\n")
		b.WriteString(knowledgeHeading)
		b.WriteString("\n")
		b.WriteString(knowledge)
	}

	fmt.Fprintf(&b, "\n\nCustomer question: %s\nServantus's answer:", question)
	return b.String()
}

// BuildSearchQuery builds the retrieval query for a question. When the user
// has a previous completed exchange it is folded in so follow-up questions
// that rely on pronouns still retrieve the right documents.
func BuildSearchQuery(question string, history []Pair) string {
	if len(history) == 0 {
		return question
	}
	last := history[len(history)-1]
	return fmt.Sprintf("previous dialog: %s %s. current question: %s",
		last.Question, last.Answer, question)
}
