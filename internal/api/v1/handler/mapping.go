package handler

import (
	"sweatshares/internal/api/v1/dto"
	"sweatshares/internal/model"
	"sweatshares/internal/service"
)

func toProfileDTO(p *model.Profile) *dto.ProfileResponseDTO {
	if p == nil {
		return nil
	}
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return &dto.ProfileResponseDTO{
		ID:               p.ID,
		FullName:         p.FullName,
		ProfessionalRole: p.ProfessionalRole,
		Bio:              p.Bio,
		Country:          p.Country,
		AvatarURL:        p.AvatarURL,
		Skills:           skills,
		CreatedAt:        p.CreatedAt,
	}
}

func toListingDTO(l *model.Listing) dto.ListingResponseDTO {
	return dto.ListingResponseDTO{
		ID:                l.ID,
		ProfileID:         l.ProfileID,
		Title:             l.Title,
		Description:       l.Description,
		ListingType:       l.ListingType,
		Sector:            l.Sector,
		Location:          l.Location,
		CompensationType:  l.CompensationType,
		CompensationValue: l.CompensationValue,
		Amount:            l.Amount,
		CreatedAt:         l.CreatedAt,
		Profile:           toProfileDTO(l.Profile),
	}
}

func toAttachmentDTO(a model.MessageAttachment) dto.AttachmentResponseDTO {
	return dto.AttachmentResponseDTO{
		ID:          a.ID,
		MessageID:   a.MessageID,
		FileName:    a.FileName,
		FilePath:    a.FilePath,
		FileSize:    a.FileSize,
		ContentType: a.ContentType,
		CreatedAt:   a.CreatedAt,
	}
}

func toMessageDTO(m model.Message) dto.MessageResponseDTO {
	attachments := make([]dto.AttachmentResponseDTO, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		attachments = append(attachments, toAttachmentDTO(a))
	}
	return dto.MessageResponseDTO{
		ID:          m.ID,
		SenderID:    m.SenderID,
		ReceiverID:  m.ReceiverID,
		Content:     m.Content,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
		Attachments: attachments,
	}
}

func toUploadDTO(u service.AttachmentUpload) dto.AttachmentUploadResponseDTO {
	return dto.AttachmentUploadResponseDTO{
		Attachment: toAttachmentDTO(u.Attachment),
		UploadURL:  u.UploadURL,
		ExpiresAt:  u.ExpiresAt,
	}
}
