package prompt

const classifyTemplate = `You are an email classification AI for a company inbox. Classify the following email into ONE category: Support, Sales, Billing, Urgent, or FYI.

Email Subject: %s
From: %s
Content: %s

Rules for classification:
%s

Important: An email can only be ONE category. If it fits multiple, choose the PRIMARY category.

Respond in this exact JSON format:
{
    "category": "Category name",
    "confidence": 0.95,
    "reasoning": "Brief explanation of why this email was classified this way"
}`

const extractTemplate = `You are an action item extraction AI. Analyze the following email and extract ALL action items.

Email Subject: %s
From: %s
Content:
%s

For each action item found, extract:
1. Task title (short, actionable)
2. Description (more details if any)
3. Due date (if mentioned - use format YYYY-MM-DD, or null)
4. Priority (high/medium/low based on urgency keywords like ASAP, urgent, critical, IMPORTANT)
5. Suggested assignee (based on context clues like "Can you...", "John should...", or null)
6. Confidence (0.0-1.0, how certain you are this is an action item)
7. Reasoning (explain why you think this is an action item)

Look for:
- Explicit requests: "Can you...", "Please...", "Need you to..."
- Questions requiring action: "Can we...?", "Do we have...?"
- Implicit tasks: "We should...", "Need to...", "Important to..."
- Deadline clues: "by Friday", "by end of month", "ASAP", "urgent", dates mentioned
- Ownership clues: Names mentioned, departments, pronouns (you, I, we)
- Verb indicators: send, complete, review, approve, prepare, schedule, fix, resolve, investigate

Return ONLY valid JSON array (no other text). If no action items, return empty array [].

Example output:
[
  {
    "title": "Send Q1 report",
    "description": "Prepare and send the Q1 financial report",
    "due_date": "2026-01-17",
    "priority": "high",
    "suggested_assignee": "Mike",
    "confidence": 0.95,
    "reasoning": "Email explicitly says 'Can you send the report by Friday' with sender asking directly"
  }
]

Analyze the email now:`

const priorityTemplate = `You are an email priority detection AI. Analyze the following email and determine its priority level.

Email:
Subject: %s
From: %s

Content:
%s
%s

Priority Detection Criteria:
HIGH URGENCY (1-2 hours):
- Keywords: URGENT, ASAP, IMMEDIATELY, CRITICAL, EMERGENCY, OUTAGE, DOWN, ALERT
- Multiple urgent signals
- Directly affects business continuity
- Time-sensitive decisions needed
- Escalated from important stakeholders

MEDIUM PRIORITY (Same day - 24 hours):
- Keywords: Should, Need to, Please review, Feedback, Update, Follow up
- Moderate impact on operations
- Standard business tasks
- Can wait a few hours

LOW PRIORITY (This week):
- Keywords: FYI, Optional, Whenever, No rush, Heads up
- Informational content
- Can be deferred
- No immediate action needed

Analyze the email and return ONLY valid JSON (no other text):
{
  "priority_level": "high|medium|low",
  "urgency_score": 1-10,
  "confidence": 0.0-1.0,
  "reasoning": "Brief explanation of priority assignment",
  "detected_signals": ["signal1", "signal2", "signal3"],
  "suggested_action": "Recommended immediate action or 'Schedule for later' or 'Archive after review'"
}

Detect priority now:`

const draftTemplate = `You are an email assistant. Generate a draft reply email based on the following thread.

Original Email Subject: %s
From: %s

Email Thread:
%s
%s

Tone Requirements:
%s

Generate a reply email with:
1. Subject line (starting with "Re: ")
2. Appropriate greeting
3. Well-structured body (2-4 paragraphs)
4. Closing that fits the tone

Return ONLY valid JSON (no other text):
{
  "subject": "Re: Subject line",
  "body": "Full email body with appropriate formatting and line breaks"
}

Generate the draft now:`

const refineTemplate = `You are an email refinement assistant.

Current draft:
%s

User feedback for refinement:
%s

Tone to maintain: %s

Please refine the draft based on the feedback while maintaining the %s tone.
Return ONLY the refined email body (no JSON, just the plain text of the refined email):`

const summarizeTemplate = `Summarize the following email thread at the top level:
- Highlight Decisions
- Highlight Action Items
- Highlight Open Questions

Email Thread:
%s
`
