// Package prompts holds the default generation prompts and an override
// mechanism that lets users drop replacement prompt files into the workspace
// templates directory.
package prompts

import "strings"

// descriptionPlaceholder marks where the business description is injected
// into the plan prompt template.
const descriptionPlaceholder = "{{DESCRIPTION}}"

// GeneratePlanPrompt asks for the five-section plan with the exact markdown
// headers the parser splits on. Header numbering is descriptive; the parser
// assigns content positionally.
const GeneratePlanPrompt = `Eres un experto consultor en automatización de clase mundial. Analiza esta descripción: "{{DESCRIPTION}}"

Genera un plan detallado siguiendo estrictamente esta estructura de encabezados markdown:

### 1. Análisis de Procesos Manuales
[Contenido]

### 2. Diseño de Flujos de Agentes
[Contenido]

### 3. Stack Tecnológico Recomendado
[Contenido]

### 4. Implementación Paso a Paso
[Contenido]

### 5. ROI Estimado
[Contenido]

Sé extremadamente profesional y utiliza búsqueda web para recomendar herramientas actuales.
`

// ChatSystemInstruction steers the advisory chat assistant.
const ChatSystemInstruction = `Eres un asistente experto en automatización de procesos empresariales. Responde de forma concisa y profesional.`

// StructuredOutputInstruction is sent to providers without search grounding,
// which are asked for the structured JSON shape instead of markdown headers.
const StructuredOutputInstruction = `Responde únicamente con un objeto JSON con exactamente estas cinco claves de tipo string: "analysis", "flows", "stack", "implementation", "roi". Sin texto adicional fuera del JSON.`

// BuildPlanPrompt injects the business description into a plan prompt
// template.
func BuildPlanPrompt(template, businessDescription string) string {
	return strings.ReplaceAll(template, descriptionPlaceholder, businessDescription)
}
