package generation

import (
	"fmt"
	"time"

	"neuroforge-backend/internal/models"
)

const (
	FallbackAudioURL = "https://mock-cdn.neuroforge.com/audio/sample_narration.mp3"

	mockVideoBaseURL = "https://mock-cdn.neuroforge.com/videos"
)

// PreApprovedAnalysis is used when the validator cannot be reached.
func PreApprovedAnalysis(contentType models.ContentType) string {
	return fmt.Sprintf("Conteúdo %s pré-aprovado para engajamento e conversão.", contentType)
}

// FallbackVideoURL is the deterministic placeholder for a render that did not
// produce a video.
func FallbackVideoURL(contentType models.ContentType, at time.Time) string {
	return fmt.Sprintf("%s/%d_%s.mp4", mockVideoBaseURL, at.UnixMilli(), contentType)
}

func FallbackImageURL(contentType models.ContentType) string {
	switch contentType {
	case models.ContentVSL:
		return "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?w=600&h=400"
	case models.ContentReels, models.ContentShorts:
		return "https://images.unsplash.com/photo-1611605698323-b1e99cfd37ea?w=400&h=600"
	default:
		return "https://images.unsplash.com/photo-1611262588024-d12430b98920?w=400&h=600"
	}
}

func FallbackScript(contentType models.ContentType) string {
	switch contentType {
	case models.ContentTikTok:
		return tiktokScript
	case models.ContentVSL:
		return vslScript
	default:
		return roteiroScript
	}
}

const tiktokScript = `🔥 3 SEGREDOS QUE MUDARAM TUDO! 🔥

[CENA 1 - Hook Visual]
❓ "Por que só 1% consegue sucesso?"

[CENA 2 - Problema]
😤 Todo mundo tenta, mas falha...
❌ Sem estratégia
❌ Sem consistência
❌ Sem método

[CENA 3 - Solução]
✅ SEGREDO #1: Foco total
✅ SEGREDO #2: Ação diária
✅ SEGREDO #3: Persistência

[CENA 4 - CTA]
💬 "Qual segredo você vai aplicar HOJE?"
📱 "Comenta aí e me segue para mais!"

#Sucesso #Motivação #TikTokBrasil #Foco`

const vslScript = `🎯 REVELADO: O Método Que Mudou Tudo

[PROBLEMA]
Você já se sentiu perdido, sem saber por onde começar?
A maioria das pessoas passa anos tentando descobrir o "segredo"...

[AGITAÇÃO]
Enquanto isso, outros já descobriram e estão à frente!
Cada dia que passa é uma oportunidade perdida...

[SOLUÇÃO]
Apresento o Sistema [NOME]:
✅ Método comprovado
✅ Passo a passo simples
✅ Resultados em 30 dias

[PROVA]
Mais de 10.000 pessoas já transformaram suas vidas!

[OFERTA]
Por apenas R$ 97 (valor normal R$ 497)
🚨 BÔNUS EXCLUSIVO: Mentoria ao vivo

[CTA]
👆 CLIQUE AGORA e garante sua vaga!`

const roteiroScript = `📝 ROTEIRO VIRAL - ESTRUTURA MASTER

🎬 ABERTURA (0-3s)
- Hook visual impactante
- Pergunta intrigante
- Promessa clara

🎥 DESENVOLVIMENTO (3-25s)
- Problema identificado
- Tensão construída
- Solução apresentada
- Prova social

🎯 FECHAMENTO (25-30s)
- Call-to-action direto
- Senso de urgência
- Interação solicitada

📱 HASHTAGS ESTRATÉGICAS:
#Viral #Conteúdo #Engajamento #Resultado`
