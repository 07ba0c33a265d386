package extract

// sampleDocument mirrors the reference résumé the catalog was built against.
const sampleDocument = `Vijay Kumar was born on March 15, 1989, in Jaipur, Rajasthan, making him 35 years old as of 2024. His birthdate is formatted as 1989-03-15 in ISO format for easy parsing, while his age serves as a key demographic marker for analytical purposes. Born and raised in the Pink City of India, his birthplace provides valuable regional profiling context, and his O+ blood group is noted for emergency contact purposes. As an Indian national, his citizenship status is important for understanding his work authorization and visa requirements across different employment opportunities.
Vijay's professional journey began on July 1, 2012, when he joined his first company as a Junior Developer with an annual salary of 350,000 INR. His career progression has been remarkable, culminating in his current role at Resse Analytics beginning on June 15, 2021, where he serves as a Principal Data Analyst earning 2,800,000 INR annually. This salary progression from his starting compensation to his current peak salary of 2,800,000 INR represents a substantial eight-fold increase over his twelve-year career span. Prior to his current position, he worked at LakeCorp Solutions from February 1, 2018, to 2021, starting as a Senior Developer and earning a promotion in 2019.
Vijay completed his high school education at St. Xavier's School, Jaipur, finishing 12th standard in 2007 and achieving an outstanding 92.5% overall score in his board examinations. He pursued his B.Tech in Computer Science at the prestigious IIT Delhi, graduating with honors in 2011 with a CGPA of 8.7 on a 10-point scale. His academic excellence continued at IIT Bombay, where he earned his M.Tech degree in Data Science in 2013, achieving an exceptional CGPA of 9.2 and scoring 95 out of 100 for his final year thesis project.
Beyond his AWS and Azure credentials, his Project Management Professional certification, obtained in 2021, was achieved with an "Above Target" rating from PMI, and his SAFe Agilist certification earned him an outstanding 98% score.
`
