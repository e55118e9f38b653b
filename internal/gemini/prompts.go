package gemini

import (
	"fmt"

	"neuroforge-backend/internal/models"
)

const ScriptSystemPrompt = "Você é um especialista em criação de roteiros virais para redes sociais e vídeos de vendas."

func validationPrompt(prompt string, contentType models.ContentType) string {
	return fmt.Sprintf(`Valide esta ideia para conteúdo viral e analise sua viabilidade:

Tipo: %[1]s
Prompt: %[2]s

Critérios de validação:
- Conteúdo apropriado (sem violência, ódio, etc.)
- Potencial viral para %[1]s
- Clareza da solicitação
- Viabilidade técnica

Responda em JSON:
{
  "approved": true/false,
  "reason": "motivo se rejeitado",
  "analysis": "análise detalhada com público-alvo, tom, estratégia"
}`, contentType, prompt)
}

func scriptPrompt(prompt string, contentType models.ContentType) string {
	return fmt.Sprintf(`Crie um roteiro detalhado para %s baseado neste prompt: %s

Diretrizes específicas:

Para TikTok/Reels:
- Hook nos primeiros 3 segundos
- Formato vertical 9:16
- Linguagem jovem e direta
- Call-to-action forte
- Hashtags relevantes

Para VSL:
- Estrutura: Problema → Agitação → Solução → Prova → Oferta → CTA
- Gatilhos mentais
- Objeções respondidas

Para roteiros gerais:
- Estrutura clara com começo, meio e fim
- Momentos de alta energia
- Transições suaves

Responda apenas com o roteiro final, sem explicações adicionais.`, contentType, prompt)
}
